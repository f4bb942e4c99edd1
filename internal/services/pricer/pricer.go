// Package pricer adapts market data providers to the engine's price model.
package pricer

import (
	"context"

	"github.com/coinpulse/coinpulse/internal/domain"
)

// Pricer supplies current quotes and historical price series. Implementers
// own timeouts and retries; the core consumes whatever snapshot they
// deliver.
type Pricer interface {
	// Quotes returns current price and 24h change per symbol. Symbols
	// without data are absent from the map rather than failing the call.
	Quotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error)

	// Series returns the validated historical price series for symbol and
	// the parallel volume values, which may be empty when the provider has
	// none.
	Series(ctx context.Context, symbol string, days int) (domain.PriceSeries, []float64, error)
}
