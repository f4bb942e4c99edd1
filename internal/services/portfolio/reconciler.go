// Package portfolio merges holdings with live quotes into valuation
// snapshots and derives the chart-ready historical series.
package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Reconciler computes valuation snapshots. Reconciliation is total: a
// missing quote degrades that asset to its purchase price (then zero) and
// marks it stale, it never fails the snapshot.
type Reconciler struct {
	logger *zap.Logger
}

// NewReconciler creates a new Reconciler instance.
func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile values every holding against the supplied quotes and aggregates
// the totals. The 24h change percent is computed against the value the
// portfolio had 24 hours ago (total minus change), guarded to zero when
// that reference value is zero.
func (r *Reconciler) Reconcile(holdings domain.Holdings, quotes map[string]domain.Quote) domain.ValuationSnapshot {
	snapshot := domain.ValuationSnapshot{
		Timestamp:   time.Now().UTC(),
		TotalValue:  decimal.Zero,
		TotalChange: decimal.Zero,
		Assets:      make([]domain.AssetValuation, 0, len(holdings)),
	}

	for _, holding := range holdings {
		asset := r.valueHolding(holding, quotes)
		snapshot.Assets = append(snapshot.Assets, asset)
		snapshot.TotalValue = snapshot.TotalValue.Add(asset.Value)

		change := asset.Value.Mul(decimal.NewFromFloat(asset.PriceChange24h)).Div(oneHundred)
		snapshot.TotalChange = snapshot.TotalChange.Add(change)
	}

	reference := snapshot.TotalValue.Sub(snapshot.TotalChange)
	if !reference.IsZero() {
		snapshot.ChangePercent = snapshot.TotalChange.Div(reference).Mul(oneHundred).InexactFloat64()
	}

	return snapshot
}

func (r *Reconciler) valueHolding(holding domain.Holding, quotes map[string]domain.Quote) domain.AssetValuation {
	asset := domain.AssetValuation{
		Symbol:   holding.Symbol,
		Quantity: holding.Quantity,
	}

	quote, ok := quotes[holding.Symbol]
	if !ok {
		price := holding.PurchasePrice
		r.logger.Warn("no live quote, using cached price",
			zap.String("symbol", holding.Symbol),
			zap.String("fallback", price.String()))
		asset.CurrentPrice = price
		asset.Value = holding.Quantity.Mul(price)
		asset.Stale = true
		return asset
	}

	asset.CurrentPrice = quote.Price
	asset.PriceChange24h = quote.Change24h
	asset.Value = holding.Quantity.Mul(quote.Price)
	return asset
}
