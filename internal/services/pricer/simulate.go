package pricer

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinpulse/coinpulse/internal/domain"
)

// basePrices anchor prices for the simulated feed.
var basePrices = map[string]float64{
	"BTC": 30000,
	"ETH": 1900,
	"SOL": 24,
	"ADA": 0.29,
}

const simulateFallbackPrice = 10

// SimulatePricer serves a deterministic synthetic feed for development and
// tests: a smooth sinusoid around a fixed anchor price per symbol. No
// network, no randomness.
type SimulatePricer struct {
	now func() time.Time
}

// NewSimulatePricer creates a simulated pricer. now may be nil.
func NewSimulatePricer(now func() time.Time) *SimulatePricer {
	if now == nil {
		now = time.Now
	}
	return &SimulatePricer{now: now}
}

func (p *SimulatePricer) anchor(symbol string) float64 {
	if base, ok := basePrices[symbol]; ok {
		return base
	}
	return simulateFallbackPrice
}

func (p *SimulatePricer) priceAt(symbol string, t time.Time) float64 {
	base := p.anchor(symbol)
	// one full cycle per week, ±4% swing
	phase := float64(t.Unix()) / float64(7*24*3600) * 2 * math.Pi
	return base * (1 + 0.04*math.Sin(phase))
}

// Quotes returns the simulated current quote for each symbol.
func (p *SimulatePricer) Quotes(_ context.Context, symbols []string) (map[string]domain.Quote, error) {
	now := p.now()
	dayAgo := now.Add(-24 * time.Hour)

	quotes := make(map[string]domain.Quote, len(symbols))
	for _, symbol := range symbols {
		current := p.priceAt(symbol, now)
		previous := p.priceAt(symbol, dayAgo)

		change := 0.0
		if previous != 0 {
			change = (current - previous) / previous * 100
		}
		quotes[symbol] = domain.Quote{
			Price:     decimal.NewFromFloat(current),
			Change24h: change,
		}
	}
	return quotes, nil
}

// Series returns an hourly simulated series over the given number of days.
func (p *SimulatePricer) Series(_ context.Context, symbol string, days int) (domain.PriceSeries, []float64, error) {
	if days <= 0 {
		days = 1
	}

	now := p.now()
	hours := days * 24
	series := make(domain.PriceSeries, hours)
	volumes := make([]float64, hours)
	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(hours-1-i) * time.Hour)
		series[i] = domain.PricePoint{
			Timestamp: t.UnixMilli(),
			Price:     p.priceAt(symbol, t),
		}
		// volume swells with the same cycle, offset a quarter period
		phase := float64(t.Unix())/float64(7*24*3600)*2*math.Pi + math.Pi/2
		volumes[i] = p.anchor(symbol) * 1000 * (1 + 0.5*math.Sin(phase))
	}

	if err := series.Validate(); err != nil {
		return nil, nil, err
	}
	return series, volumes, nil
}
