// Package promptbuilder formats computed indicators and valuation data into
// token-efficient prompts for LLM consumption.
package promptbuilder

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
)

// AdvisoryContext contains all data needed for prompt building.
type AdvisoryContext struct {
	Analysis *domain.Analysis
	Snapshot domain.ValuationSnapshot
}

// PromptBuilder constructs prompts for the portfolio coach LLM.
type PromptBuilder struct {
	logger *zap.Logger
}

// NewPromptBuilder creates a new PromptBuilder instance.
func NewPromptBuilder(logger *zap.Logger) *PromptBuilder {
	return &PromptBuilder{logger: logger}
}

// BuildUserPrompt renders the advisory context into the user prompt.
func (pb *PromptBuilder) BuildUserPrompt(ctx AdvisoryContext) string {
	var sb strings.Builder

	if ctx.Analysis != nil {
		sb.WriteString(pb.formatAnalysis(ctx.Analysis))
	}
	sb.WriteString(pb.formatValuation(ctx.Snapshot))

	sb.WriteString("## Instructions\n\n")
	sb.WriteString("Write the portfolio commentary described in your system instructions.\n")

	return sb.String()
}

func (pb *PromptBuilder) formatAnalysis(a *domain.Analysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Technical Analysis for %s\n\n", a.Symbol))
	sb.WriteString(fmt.Sprintf("**Current Price:** %.4f\n", a.CurrentPrice))
	sb.WriteString(fmt.Sprintf("**RSI14:** %.2f (%s/%s)\n", a.RSI.Value, a.RSI.Signal, a.RSI.Strength))
	sb.WriteString(fmt.Sprintf("**SMA:** 20=%.4f 50=%.4f 200=%.4f\n", a.SMA20, a.SMA50, a.SMA200))
	sb.WriteString(fmt.Sprintf("**EMA:** 12=%.4f 26=%.4f\n", a.EMA12, a.EMA26))
	sb.WriteString(fmt.Sprintf("**MACD:** %.4f signal=%.4f histogram=%.4f\n",
		a.MACD.MACD, a.MACD.Signal, a.MACD.Histogram))
	sb.WriteString(fmt.Sprintf("**Bollinger:** upper=%.4f middle=%.4f lower=%.4f\n",
		a.BollingerBands.Upper, a.BollingerBands.Middle, a.BollingerBands.Lower))

	sb.WriteString("**Fibonacci levels:** ")
	labels := make([]string, 0, len(a.Fibonacci.Levels))
	for _, label := range domain.FibLabels {
		if v, ok := a.Fibonacci.Levels[label]; ok {
			labels = append(labels, fmt.Sprintf("%s=%.4f", label, v))
		}
	}
	sb.WriteString(strings.Join(labels, " "))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("**Support:** %s\n", formatLevels(a.SupportResistance.Support)))
	sb.WriteString(fmt.Sprintf("**Resistance:** %s\n", formatLevels(a.SupportResistance.Resistance)))

	if len(a.Patterns) > 0 {
		sb.WriteString("**Patterns:**\n")
		for _, p := range a.Patterns {
			sb.WriteString(fmt.Sprintf("- %s (%s, %d%%): target %.4f, stop %.4f\n",
				p.Pattern.Title(), p.Direction.Title(), p.Probability, p.Target, p.StopLoss))
		}
	}

	if a.Volume != nil {
		sb.WriteString(fmt.Sprintf("**Volume:** current=%.2f avg=%.2f relative=%.2fx spikes=%d\n",
			a.Volume.CurrentVolume, a.Volume.AverageVolume, a.Volume.RelativeVolume, len(a.Volume.VolumeSpikes)))
	}

	sb.WriteString(fmt.Sprintf("**Overall:** %s (confidence %.0f%%)\n\n", a.OverallSignal.Title(), a.Confidence))
	return sb.String()
}

func (pb *PromptBuilder) formatValuation(s domain.ValuationSnapshot) string {
	var sb strings.Builder

	sb.WriteString("## Portfolio Valuation\n\n")
	sb.WriteString("```\n")
	sb.WriteString("Symbol | Quantity | Price      | 24h%   | Value      | Fresh\n")
	sb.WriteString("-------|----------|------------|--------|------------|------\n")

	assets := make([]domain.AssetValuation, len(s.Assets))
	copy(assets, s.Assets)
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Value.GreaterThan(assets[j].Value)
	})

	for _, asset := range assets {
		fresh := "live"
		if asset.Stale {
			fresh = "cached"
		}
		sb.WriteString(fmt.Sprintf("%-6s | %8s | %10s | %+5.2f%% | %10s | %s\n",
			asset.Symbol, asset.Quantity.String(), asset.CurrentPrice.StringFixed(2),
			asset.PriceChange24h, asset.Value.StringFixed(2), fresh))
	}
	sb.WriteString("```\n\n")

	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", s.TotalValue.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("**24h Change:** %s (%+.2f%%)\n\n", s.TotalChange.StringFixed(2), s.ChangePercent))
	return sb.String()
}

func formatLevels(levels []float64) string {
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%.4f", l)
	}
	return strings.Join(parts, " ")
}
