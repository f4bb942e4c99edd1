package domain

// IndicatorResult value of a single indicator with its derived signal.
type IndicatorResult struct {
	Value    float64  `json:"value"`
	Signal   Signal   `json:"signal"`
	Strength Strength `json:"strength"`
}

// NeutralIndicator returns the documented fallback for an indicator that
// could not be computed from the available history.
func NeutralIndicator(value float64) IndicatorResult {
	return IndicatorResult{Value: value, Signal: SignalHold, Strength: StrengthNeutral}
}

// MACDResult MACD line, signal line and histogram.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands volatility envelope around a moving average.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// FibLabels retracement level labels in high-to-low order.
var FibLabels = []string{"0%", "23.6%", "38.2%", "50%", "61.8%", "78.6%", "100%"}

// FibonacciLevels retracement levels between a swing high and low.
type FibonacciLevels struct {
	High   float64            `json:"high"`
	Low    float64            `json:"low"`
	Levels map[string]float64 `json:"levels"`
}

// SupportResistance the strongest price levels on each side, ordered by
// touch count descending, at most three per side.
type SupportResistance struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// VolumeAnalysis volume metrics over the most recent window.
type VolumeAnalysis struct {
	CurrentVolume  float64 `json:"currentVolume"`
	AverageVolume  float64 `json:"averageVolume"`
	RelativeVolume float64 `json:"relativeVolume"`
	VolumeSpikes   []int   `json:"volumeSpikes"`
}
