package analysis

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
)

// Analyzer runs the full indicator suite over a price series. Stateless:
// every call is a pure function of its inputs.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Comprehensive computes every indicator, detects patterns and derives the
// overall signal from four directional votes (RSI, price vs SMA20, price vs
// SMA50, MACD vs signal line). Indicators with insufficient history degrade
// to their documented neutral values; only a structurally invalid series
// fails.
//
// volumes is the optional parallel volume series; pass nil when the
// provider did not supply one.
func (a *Analyzer) Comprehensive(symbol string, series domain.PriceSeries, volumes []float64) (*domain.Analysis, error) {
	if err := series.Validate(); err != nil {
		return nil, errors.Wrapf(err, "analysis of %s", symbol)
	}

	prices := series.Prices()
	current := prices[len(prices)-1]

	sma20, _ := SMA(prices, 20)
	sma50, _ := SMA(prices, 50)
	sma200, _ := SMA(prices, 200)
	ema12, _ := EMA(prices, 12)
	ema26, _ := EMA(prices, 26)
	rsi := RSI(prices, 14)
	macd := MACD(prices)

	bands, err := Bollinger(prices, 20, 2)
	if err != nil {
		a.logger.Debug("bollinger bands degraded to neutral",
			zap.String("symbol", symbol), zap.Int("points", len(prices)))
		bands = domain.BollingerBands{Upper: current, Middle: current, Lower: current}
	}

	high, low := prices[0], prices[0]
	for _, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}

	votes := []domain.TrendDirection{
		signalToTrend(rsi.Signal),
		priceVsLevel(current, sma20),
		priceVsLevel(current, sma50),
		macdVsSignal(prices, macd),
	}
	overall, confidence := Aggregate(votes)

	result := &domain.Analysis{
		Symbol:            symbol,
		CurrentPrice:      current,
		RSI:               rsi,
		SMA20:             sma20,
		SMA50:             sma50,
		SMA200:            sma200,
		EMA12:             ema12,
		EMA26:             ema26,
		MACD:              macd,
		BollingerBands:    bands,
		Fibonacci:         FibonacciRetracement(high, low),
		SupportResistance: FindSupportResistance(prices, 2),
		Patterns:          DetectPatterns(prices),
		OverallSignal:     overall,
		Confidence:        confidence,
	}

	if volumes != nil {
		volume := AnalyzeVolume(volumes)
		result.Volume = &volume
	}

	return result, nil
}

func signalToTrend(s domain.Signal) domain.TrendDirection {
	switch s {
	case domain.SignalBuy:
		return domain.TrendDirectionBullish
	case domain.SignalSell:
		return domain.TrendDirectionBearish
	default:
		return domain.TrendDirectionNeutral
	}
}

// priceVsLevel votes bullish when the price trades above the moving
// average. A zero level means the average could not be computed, which
// counts as a neutral vote.
func priceVsLevel(price, level float64) domain.TrendDirection {
	if level == 0 {
		return domain.TrendDirectionNeutral
	}
	if price > level {
		return domain.TrendDirectionBullish
	}
	if price < level {
		return domain.TrendDirectionBearish
	}
	return domain.TrendDirectionNeutral
}

// macdVsSignal votes on the MACD line relative to its signal line. Without
// enough history for the signal line both values are zero and the vote is
// neutral.
func macdVsSignal(prices []float64, m domain.MACDResult) domain.TrendDirection {
	if len(prices) < 26+9 {
		return domain.TrendDirectionNeutral
	}
	if m.MACD > m.Signal {
		return domain.TrendDirectionBullish
	}
	if m.MACD < m.Signal {
		return domain.TrendDirectionBearish
	}
	return domain.TrendDirectionNeutral
}
