package analysis

import "github.com/coinpulse/coinpulse/internal/domain"

// Aggregate combines discrete directional votes into an overall sentiment
// and a confidence percentage. Neutral votes count toward neither side;
// ties resolve to neutral. Confidence is |bullish-bearish|/(bullish+bearish)
// as a percentage, zero when no vote is directional.
func Aggregate(votes []domain.TrendDirection) (domain.TrendDirection, float64) {
	var bullish, bearish int
	for _, v := range votes {
		switch v {
		case domain.TrendDirectionBullish:
			bullish++
		case domain.TrendDirectionBearish:
			bearish++
		}
	}

	overall := domain.TrendDirectionNeutral
	if bullish > bearish {
		overall = domain.TrendDirectionBullish
	} else if bearish > bullish {
		overall = domain.TrendDirectionBearish
	}

	total := bullish + bearish
	if total == 0 {
		return overall, 0
	}

	diff := bullish - bearish
	if diff < 0 {
		diff = -diff
	}
	return overall, float64(diff) / float64(total) * 100
}
