package domain

// AdvisoryInsight commentary produced for one refresh cycle.
type AdvisoryInsight struct {
	Text string `json:"text"`
	// Fallback marks rule-based text substituted for a provider failure.
	Fallback bool `json:"fallback,omitempty"`
}

// Analysis full technical analysis payload for one symbol, consumed by the
// dashboard and the advisory facade.
type Analysis struct {
	Symbol            string            `json:"symbol"`
	CurrentPrice      float64           `json:"currentPrice"`
	RSI               IndicatorResult   `json:"rsi"`
	SMA20             float64           `json:"sma20"`
	SMA50             float64           `json:"sma50"`
	SMA200            float64           `json:"sma200"`
	EMA12             float64           `json:"ema12"`
	EMA26             float64           `json:"ema26"`
	MACD              MACDResult        `json:"macd"`
	BollingerBands    BollingerBands    `json:"bollingerBands"`
	Fibonacci         FibonacciLevels   `json:"fibonacci"`
	SupportResistance SupportResistance `json:"supportResistance"`
	Patterns          []PatternResult   `json:"patterns"`
	Volume            *VolumeAnalysis   `json:"volume,omitempty"`
	OverallSignal     TrendDirection    `json:"overallSignal"`
	Confidence        float64           `json:"confidence"`
}
