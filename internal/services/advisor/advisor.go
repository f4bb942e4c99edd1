// Package advisor turns computed indicators and valuation data into
// natural-language commentary, falling back to deterministic rule-based
// text when the LLM provider is unavailable.
package advisor

import (
	"context"

	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/clients"
	"github.com/coinpulse/coinpulse/internal/domain"
	"github.com/coinpulse/coinpulse/internal/services/promptbuilder"
)

// Advisor is the facade over the LLM provider. Insight never propagates a
// provider error to the caller.
type Advisor struct {
	llm    clients.LLMClient
	logger *zap.Logger
}

// New creates a new Advisor. llm may be nil, in which case every insight is
// the rule-based fallback.
func New(llm clients.LLMClient, logger *zap.Logger) *Advisor {
	return &Advisor{llm: llm, logger: logger}
}

// Insight generates commentary for the analysis and snapshot. On provider
// failure or absence it returns the deterministic fallback derived from RSI
// thresholds and price-vs-key-level comparisons.
func (a *Advisor) Insight(ctx context.Context, analysis *domain.Analysis, snapshot domain.ValuationSnapshot) domain.AdvisoryInsight {
	if a.llm == nil {
		return domain.AdvisoryInsight{Text: fallbackText(analysis, snapshot), Fallback: true}
	}

	text, err := a.llm.GetInsight(ctx, promptbuilder.AdvisoryContext{
		Analysis: analysis,
		Snapshot: snapshot,
	})
	if err != nil {
		a.logger.Warn("advisory provider failed, using rule-based fallback", zap.Error(err))
		return domain.AdvisoryInsight{Text: fallbackText(analysis, snapshot), Fallback: true}
	}

	return domain.AdvisoryInsight{Text: text}
}
