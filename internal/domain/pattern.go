package domain

// Pattern recognized chart pattern.
type Pattern string

const (
	PatternHeadAndShoulders Pattern = "HEAD_AND_SHOULDERS"
	PatternDoubleTop        Pattern = "DOUBLE_TOP"
	PatternDoubleBottom     Pattern = "DOUBLE_BOTTOM"
)

// Title returns a human-readable representation.
func (p Pattern) Title() string {
	switch p {
	case PatternHeadAndShoulders:
		return "Head & Shoulders"
	case PatternDoubleTop:
		return "Double Top"
	case PatternDoubleBottom:
		return "Double Bottom"
	default:
		return string(p)
	}
}

// PatternResult one detected chart pattern with its trade levels.
type PatternResult struct {
	Pattern     Pattern        `json:"pattern"`
	Probability int            `json:"probability"`
	Direction   TrendDirection `json:"direction"`
	Target      float64        `json:"target"`
	StopLoss    float64        `json:"stopLoss"`
}
