// Package analysis computes technical indicators, chart patterns and the
// aggregate market signal from a raw price series.
package analysis

import (
	"math"

	"github.com/pkg/errors"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const (
	rsiOversold         = 30
	rsiOverbought       = 70
	rsiStrongOversold   = 20
	rsiStrongOverbought = 80
)

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// SMA returns the arithmetic mean of the last period values, rounded to
// four decimal places. Returns 0 and ErrInsufficientData when the series is
// shorter than the period.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidSeries, "non-positive period %d", period)
	}
	if len(prices) < period {
		return 0, errors.Wrapf(domain.ErrInsufficientData, "sma needs %d points, got %d", period, len(prices))
	}

	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return round4(sum / float64(period)), nil
}

// EMA returns the exponential moving average over the entire supplied slice,
// seeded with the first element. The caller is responsible for passing the
// window it wants smoothed. Returns 0 and ErrInsufficientData when the
// series is shorter than the period.
func EMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidSeries, "non-positive period %d", period)
	}
	if len(prices) < period {
		return 0, errors.Wrapf(domain.ErrInsufficientData, "ema needs %d points, got %d", period, len(prices))
	}

	multiplier := 2.0 / float64(period+1)
	ema := prices[0]
	for _, p := range prices[1:] {
		ema = p*multiplier + ema*(1-multiplier)
	}
	return round4(ema), nil
}

// RSI computes the Wilder-smoothed relative strength index. Series shorter
// than period+1 degrade to the neutral result rather than failing, so
// composite analysis stays total on sparse data.
func RSI(prices []float64, period int) domain.IndicatorResult {
	if period <= 0 || len(prices) < period+1 {
		return domain.NeutralIndicator(50)
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	// zero average loss means RS is unbounded; clamp instead of emitting NaN
	value := 100.0
	if avgLoss > 0 {
		rs := avgGain / avgLoss
		value = 100 - 100/(1+rs)
	}

	return domain.IndicatorResult{Value: value, Signal: rsiSignal(value), Strength: rsiStrength(value)}
}

func rsiSignal(value float64) domain.Signal {
	switch {
	case value <= rsiOversold:
		return domain.SignalBuy
	case value >= rsiOverbought:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}

func rsiStrength(value float64) domain.Strength {
	switch {
	case value <= rsiStrongOversold || value >= rsiStrongOverbought:
		return domain.StrengthStrong
	case value <= rsiOversold || value >= rsiOverbought:
		return domain.StrengthWeak
	default:
		return domain.StrengthNeutral
	}
}

// MACD computes the MACD line (EMA12-EMA26), its 9-period signal line and
// the histogram. The signal line is the EMA of the historical MACD series,
// rebuilt by replaying EMA12/EMA26 on every growing prefix from index 26
// onward. Quadratic on purpose: series here are small and the replay keeps
// the values exactly reproducible.
func MACD(prices []float64) domain.MACDResult {
	macdSeries := macdHistory(prices)
	if len(macdSeries) == 0 {
		return domain.MACDResult{}
	}

	macd := macdSeries[len(macdSeries)-1]
	signal, err := EMA(macdSeries, 9)
	if err != nil {
		signal = 0
	}
	return domain.MACDResult{
		MACD:      macd,
		Signal:    signal,
		Histogram: round4(macd - signal),
	}
}

func macdHistory(prices []float64) []float64 {
	if len(prices) < 26 {
		return nil
	}
	series := make([]float64, 0, len(prices)-26)
	for i := 26; i <= len(prices); i++ {
		ema12, err12 := EMA(prices[:i], 12)
		ema26, err26 := EMA(prices[:i], 26)
		if err12 != nil || err26 != nil {
			continue
		}
		series = append(series, round4(ema12-ema26))
	}
	return series
}

// Bollinger computes the volatility envelope: middle is the period SMA,
// upper/lower are k population standard deviations away.
func Bollinger(prices []float64, period int, k float64) (domain.BollingerBands, error) {
	middle, err := SMA(prices, period)
	if err != nil {
		return domain.BollingerBands{}, err
	}

	window := prices[len(prices)-period:]
	variance := 0.0
	for _, p := range window {
		diff := p - middle
		variance += diff * diff
	}
	sigma := math.Sqrt(variance / float64(period))

	return domain.BollingerBands{
		Upper:  round4(middle + k*sigma),
		Middle: middle,
		Lower:  round4(middle - k*sigma),
	}, nil
}

// FibonacciRetracement derives the standard retracement levels between a
// swing high and low. Level 0% is the high and 100% the low.
func FibonacciRetracement(high, low float64) domain.FibonacciLevels {
	ratios := []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}
	span := high - low

	levels := make(map[string]float64, len(ratios))
	for i, label := range domain.FibLabels {
		levels[label] = round4(high - span*ratios[i])
	}
	return domain.FibonacciLevels{High: high, Low: low, Levels: levels}
}

// FindSupportResistance scans for local extrema using a two-point symmetric
// window, clusters levels within 1% of each other and keeps the three most
// touched levels per side.
func FindSupportResistance(prices []float64, minTouches int) domain.SupportResistance {
	var lows, highs []float64
	for i := 2; i < len(prices)-2; i++ {
		p := prices[i]
		if p <= prices[i-1] && p <= prices[i-2] && p <= prices[i+1] && p <= prices[i+2] {
			lows = append(lows, p)
		}
		if p >= prices[i-1] && p >= prices[i-2] && p >= prices[i+1] && p >= prices[i+2] {
			highs = append(highs, p)
		}
	}

	return domain.SupportResistance{
		Support:    strongestLevels(lows, minTouches),
		Resistance: strongestLevels(highs, minTouches),
	}
}

type levelGroup struct {
	sum   float64
	count int
}

func (g levelGroup) avg() float64 { return g.sum / float64(g.count) }

func strongestLevels(levels []float64, minTouches int) []float64 {
	var groups []levelGroup
	for _, level := range levels {
		merged := false
		for i := range groups {
			avg := groups[i].avg()
			if avg != 0 && math.Abs(level-avg)/avg <= 0.01 {
				groups[i].sum += level
				groups[i].count++
				merged = true
				break
			}
		}
		if !merged {
			groups = append(groups, levelGroup{sum: level, count: 1})
		}
	}

	var kept []levelGroup
	for _, g := range groups {
		if g.count >= minTouches {
			kept = append(kept, g)
		}
	}
	// stable: equal touch counts keep first-seen order
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j].count > kept[j-1].count; j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}

	result := make([]float64, 0, 3)
	for _, g := range kept {
		if len(result) == 3 {
			break
		}
		result = append(result, round4(g.avg()))
	}
	return result
}
