package advisor

import (
	"fmt"
	"strings"

	"github.com/coinpulse/coinpulse/internal/domain"
)

// fallbackText builds deterministic commentary from RSI thresholds and
// price-vs-key-level comparisons. Same inputs always produce the same text.
func fallbackText(analysis *domain.Analysis, snapshot domain.ValuationSnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Your portfolio is currently worth %s, %+.2f%% over the last 24 hours.",
		snapshot.TotalValue.StringFixed(2), snapshot.ChangePercent))

	stale := 0
	for _, asset := range snapshot.Assets {
		if asset.Stale {
			stale++
		}
	}
	if stale > 0 {
		sb.WriteString(fmt.Sprintf(" %d asset(s) are valued from cached prices and may be outdated.", stale))
	}
	sb.WriteString("\n\n")

	if analysis != nil {
		sb.WriteString(rsiComment(analysis))
		sb.WriteString(levelComment(analysis))
		sb.WriteString(fmt.Sprintf("Overall the indicators read %s with %.0f%% confidence.\n\n",
			strings.ToLower(analysis.OverallSignal.Title()), analysis.Confidence))
	}

	sb.WriteString("This is an automated summary of computed indicators, not financial advice.")
	return sb.String()
}

func rsiComment(a *domain.Analysis) string {
	rsi := a.RSI.Value
	switch {
	case rsi <= 30:
		return fmt.Sprintf("%s looks oversold with RSI at %.1f; sellers may be exhausted. ", a.Symbol, rsi)
	case rsi >= 70:
		return fmt.Sprintf("%s looks overbought with RSI at %.1f; a pullback would not be unusual. ", a.Symbol, rsi)
	default:
		return fmt.Sprintf("%s momentum is balanced with RSI at %.1f. ", a.Symbol, rsi)
	}
}

func levelComment(a *domain.Analysis) string {
	var sb strings.Builder

	if a.SMA50 > 0 {
		if a.CurrentPrice > a.SMA50 {
			sb.WriteString(fmt.Sprintf("Price %.2f holds above the 50-period average %.2f. ", a.CurrentPrice, a.SMA50))
		} else {
			sb.WriteString(fmt.Sprintf("Price %.2f sits below the 50-period average %.2f. ", a.CurrentPrice, a.SMA50))
		}
	}

	if len(a.SupportResistance.Support) > 0 {
		sb.WriteString(fmt.Sprintf("Nearest tracked support is around %.2f. ", a.SupportResistance.Support[0]))
	}
	if len(a.SupportResistance.Resistance) > 0 {
		sb.WriteString(fmt.Sprintf("Nearest tracked resistance is around %.2f. ", a.SupportResistance.Resistance[0]))
	}

	sb.WriteString("\n\n")
	return sb.String()
}
