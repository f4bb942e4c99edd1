// Package domain defines core data structures used throughout the engine.
package domain

import (
	"time"

	"github.com/pkg/errors"
)

// PricePoint single price sample.
type PricePoint struct {
	// Timestamp milliseconds since the Unix epoch.
	Timestamp int64
	// Price last traded price at Timestamp.
	Price float64
}

// Time returns the sample time.
func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// PriceSeries ordered sequence of price samples, ascending by timestamp.
type PriceSeries []PricePoint

// SeriesFromPairs builds a PriceSeries from [timestampMs, price] pairs as
// delivered by market data providers.
func SeriesFromPairs(pairs [][2]float64) (PriceSeries, error) {
	series := make(PriceSeries, len(pairs))
	for i, pair := range pairs {
		series[i] = PricePoint{Timestamp: int64(pair[0]), Price: pair[1]}
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// Validate checks that the series is non-empty and strictly ascending.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidSeries, "empty series")
	}
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp <= s[i-1].Timestamp {
			return errors.Wrapf(ErrInvalidSeries, "timestamp at index %d is not ascending", i)
		}
	}
	return nil
}

// Prices returns the flattened price values.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent sample.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}
