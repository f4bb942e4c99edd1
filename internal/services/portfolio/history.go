package portfolio

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const (
	historyWaveAmplitude  = 0.12
	historyNoiseAmplitude = 0.04
	historyWavePeriodDays = 14
	historyFloorRatio     = 0.3
)

// HistoryEstimator projects a plausible backward value series from the
// current portfolio total when no real historical aggregation exists. The
// output is an estimate for charting, not an accounting record: a bounded
// sinusoid plus small noise around the current value, clamped to a floor of
// 30% of it. The final point is always the current value exactly.
type HistoryEstimator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewHistoryEstimator creates an estimator with the given randomness source
// and clock. Tests inject a fixed seed and clock for determinism.
func NewHistoryEstimator(src rand.Source, now func() time.Time) *HistoryEstimator {
	if now == nil {
		now = time.Now
	}
	return &HistoryEstimator{rand: rand.New(src), now: now}
}

// Backfill generates days+1 daily points ending today at currentValue.
func (e *HistoryEstimator) Backfill(currentValue decimal.Decimal, days int) []domain.HistoricalPoint {
	if days < 0 {
		days = 0
	}

	points := make([]domain.HistoricalPoint, 0, days+1)
	today := e.now().UTC()
	current, _ := currentValue.Float64()

	prev := 0.0
	for offset := days; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)

		value := current
		if offset > 0 {
			wave := historyWaveAmplitude * math.Sin(2*math.Pi*float64(days-offset)/historyWavePeriodDays)
			noise := historyNoiseAmplitude * (e.rand.Float64()*2 - 1)
			multiplier := 1 + wave + noise
			if multiplier < historyFloorRatio {
				multiplier = historyFloorRatio
			}
			value = current * multiplier
		}

		changePercent := 0.0
		if prev != 0 {
			changePercent = (value - prev) / prev * 100
		}
		prev = value

		pointValue := decimal.NewFromFloat(value).Round(2)
		if offset == 0 {
			pointValue = currentValue
		}
		points = append(points, domain.HistoricalPoint{
			Label:         day.Format("Jan 2"),
			Value:         pointValue,
			ChangePercent: changePercent,
		})
	}

	return points
}
