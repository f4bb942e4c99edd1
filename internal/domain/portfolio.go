package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding a user's quantity of one asset symbol.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	// PurchasePrice optional average acquisition price; zero when unknown.
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// Holdings the set of holdings owned by one portfolio.
type Holdings []Holding

// Add registers a holding. Adding a symbol that already exists increases
// its quantity; the purchase price of the first add wins when the repeat
// add carries none.
func (h Holdings) Add(holding Holding) Holdings {
	for i, existing := range h {
		if existing.Symbol != holding.Symbol {
			continue
		}
		h[i].Quantity = existing.Quantity.Add(holding.Quantity)
		if existing.PurchasePrice.IsZero() {
			h[i].PurchasePrice = holding.PurchasePrice
		}
		return h
	}
	return append(h, holding)
}

// Remove deletes the holding for symbol, if present.
func (h Holdings) Remove(symbol string) Holdings {
	for i, existing := range h {
		if existing.Symbol == symbol {
			return append(h[:i], h[i+1:]...)
		}
	}
	return h
}

// Quote current market price and 24h change for one symbol.
type Quote struct {
	Price decimal.Decimal
	// Change24h percent change over the last 24 hours, e.g. 5 for +5%.
	Change24h float64
}

// AssetValuation per-holding slice of a valuation snapshot.
type AssetValuation struct {
	Symbol         string          `json:"symbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	PriceChange24h float64         `json:"priceChange24h"`
	Value          decimal.Decimal `json:"totalValue"`
	// Stale marks a valuation computed from the purchase price (or zero)
	// because no live quote was available.
	Stale bool `json:"stale,omitempty"`
}

// ValuationSnapshot point-in-time computed value of a portfolio.
// Recomputed on every price refresh; holdings and last-seen prices remain
// the source of truth.
type ValuationSnapshot struct {
	Timestamp     time.Time        `json:"ts"`
	TotalValue    decimal.Decimal  `json:"totalValue"`
	TotalChange   decimal.Decimal  `json:"totalChange"`
	ChangePercent float64          `json:"changePercent"`
	Assets        []AssetValuation `json:"assets"`
}

// HistoricalPoint chart-ready portfolio value sample.
type HistoricalPoint struct {
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	ChangePercent float64         `json:"changePercent"`
}

// ValuationRecord bundles a snapshot with its append-log index.
type ValuationRecord struct {
	Index    uint64
	Snapshot ValuationSnapshot
}
