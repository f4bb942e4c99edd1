package analysis

import (
	"math"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const (
	headShoulderWindow    = 20
	headShoulderTolerance = 0.05
	doubleExtremaWindow   = 30
	doubleTolerance       = 0.02
)

// DetectPatterns runs the independent pattern heuristics over the series.
// Checks are independent and several patterns may fire on the same series.
func DetectPatterns(prices []float64) []domain.PatternResult {
	var results []domain.PatternResult
	if p, ok := detectHeadAndShoulders(prices); ok {
		results = append(results, p)
	}
	results = append(results, detectDoubleExtremes(prices)...)
	return results
}

// detectHeadAndShoulders looks at the last 20 samples only. The head is the
// window's global maximum and must sit strictly inside positions 5..15 so
// both shoulders have room to form.
func detectHeadAndShoulders(prices []float64) (domain.PatternResult, bool) {
	if len(prices) < headShoulderWindow {
		return domain.PatternResult{}, false
	}
	window := prices[len(prices)-headShoulderWindow:]

	headIdx := 0
	for i, p := range window {
		if p > window[headIdx] {
			headIdx = i
		}
	}
	if headIdx <= 5 || headIdx >= 15 {
		return domain.PatternResult{}, false
	}

	leftShoulder := maxOf(window[:headIdx])
	rightShoulder := maxOf(window[headIdx+1:])
	if leftShoulder == 0 || math.Abs(leftShoulder-rightShoulder)/leftShoulder >= headShoulderTolerance {
		return domain.PatternResult{}, false
	}

	current := prices[len(prices)-1]
	head := window[headIdx]
	return domain.PatternResult{
		Pattern:     domain.PatternHeadAndShoulders,
		Probability: 75,
		Direction:   domain.TrendDirectionBearish,
		Target:      round4(current * 0.95),
		StopLoss:    round4(head * 1.02),
	}, true
}

// detectDoubleExtremes compares the two most recent local maxima (and
// minima) of the whole series. Earlier, possibly stronger pairs are ignored
// deliberately; the dashboard cares about the freshest formation.
func detectDoubleExtremes(prices []float64) []domain.PatternResult {
	if len(prices) < doubleExtremaWindow {
		return nil
	}

	var maxima, minima []float64
	for i := 1; i < len(prices)-1; i++ {
		if prices[i] > prices[i-1] && prices[i] > prices[i+1] {
			maxima = append(maxima, prices[i])
		}
		if prices[i] < prices[i-1] && prices[i] < prices[i+1] {
			minima = append(minima, prices[i])
		}
	}

	current := prices[len(prices)-1]
	var results []domain.PatternResult

	if len(maxima) >= 2 {
		a, b := maxima[len(maxima)-2], maxima[len(maxima)-1]
		if a != 0 && math.Abs(a-b)/a < doubleTolerance {
			results = append(results, domain.PatternResult{
				Pattern:     domain.PatternDoubleTop,
				Probability: 70,
				Direction:   domain.TrendDirectionBearish,
				Target:      round4(current * 0.94),
				StopLoss:    round4(math.Max(a, b) * 1.02),
			})
		}
	}

	if len(minima) >= 2 {
		a, b := minima[len(minima)-2], minima[len(minima)-1]
		if a != 0 && math.Abs(a-b)/a < doubleTolerance {
			results = append(results, domain.PatternResult{
				Pattern:     domain.PatternDoubleBottom,
				Probability: 70,
				Direction:   domain.TrendDirectionBullish,
				Target:      round4(current * 1.06),
				StopLoss:    round4(math.Min(a, b) * 0.98),
			})
		}
	}

	return results
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
