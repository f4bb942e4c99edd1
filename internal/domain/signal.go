package domain

// Signal discrete trade signal emitted by an indicator.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// Strength qualifies how pronounced a signal is.
type Strength string

const (
	StrengthStrong  Strength = "STRONG"
	StrengthWeak    Strength = "WEAK"
	StrengthNeutral Strength = "NEUTRAL"
)

// TrendDirection qualitative direction of price action.
type TrendDirection string

const (
	TrendDirectionBullish TrendDirection = "BULLISH"
	TrendDirectionBearish TrendDirection = "BEARISH"
	TrendDirectionNeutral TrendDirection = "NEUTRAL"
)

// Title returns a human-readable representation.
func (t TrendDirection) Title() string {
	switch t {
	case TrendDirectionBullish:
		return "Bullish"
	case TrendDirectionBearish:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// Opposite returns the mirrored direction; neutral mirrors to itself.
func (t TrendDirection) Opposite() TrendDirection {
	switch t {
	case TrendDirectionBullish:
		return TrendDirectionBearish
	case TrendDirectionBearish:
		return TrendDirectionBullish
	default:
		return TrendDirectionNeutral
	}
}
