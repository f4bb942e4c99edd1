package app

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
	"github.com/coinpulse/coinpulse/internal/services/advisor"
	"github.com/coinpulse/coinpulse/internal/services/analysis"
	"github.com/coinpulse/coinpulse/internal/services/portfolio"
	"github.com/coinpulse/coinpulse/internal/services/pricer"
)

type memorySaver struct {
	saved []domain.ValuationSnapshot
	err   error
}

func (m *memorySaver) Save(snapshot domain.ValuationSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

type failingPricer struct{}

func (failingPricer) Quotes(context.Context, []string) (map[string]domain.Quote, error) {
	return nil, errors.New("provider down")
}

func (failingPricer) Series(context.Context, string, int) (domain.PriceSeries, []float64, error) {
	return nil, nil, errors.New("provider down")
}

func testClock() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestRefresher(p pricer.Pricer, store snapshotSaver, holdings domain.Holdings) *Refresher {
	logger := zap.NewNop()
	return NewRefresher(
		p,
		analysis.NewAnalyzer(logger),
		portfolio.NewReconciler(logger),
		portfolio.NewHistoryEstimator(rand.NewSource(1), testClock),
		advisor.New(nil, logger),
		store,
		holdings,
		30,
		logger,
	)
}

func TestRunOnce(t *testing.T) {
	holdings := domain.Holdings{
		{Symbol: "BTC", Quantity: decimal.NewFromFloat(0.5)},
		{Symbol: "ETH", Quantity: decimal.NewFromInt(2)},
	}
	store := &memorySaver{}
	refresher := newTestRefresher(pricer.NewSimulatePricer(testClock), store, holdings)

	require.NoError(t, refresher.RunOnce(context.Background()))

	snapshot := refresher.Snapshot()
	require.Len(t, snapshot.Assets, 2)
	assert.True(t, snapshot.TotalValue.IsPositive())
	for _, asset := range snapshot.Assets {
		assert.False(t, asset.Stale)
	}

	analyses := refresher.Analyses()
	require.Len(t, analyses, 2)
	assert.Equal(t, "BTC", analyses[0].Symbol)
	assert.NotNil(t, analyses[0].Volume)

	insight := refresher.Insight()
	assert.True(t, insight.Fallback)
	assert.NotEmpty(t, insight.Text)

	history := refresher.History()
	require.Len(t, history, 31)
	assert.True(t, history[30].Value.Equal(snapshot.TotalValue))

	require.Len(t, store.saved, 1)
	assert.True(t, store.saved[0].TotalValue.Equal(snapshot.TotalValue))
}

func TestRunOnceDegradesWhenProviderDown(t *testing.T) {
	holdings := domain.Holdings{
		{Symbol: "BTC", Quantity: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(25000)},
	}
	refresher := newTestRefresher(failingPricer{}, nil, holdings)

	require.NoError(t, refresher.RunOnce(context.Background()))

	snapshot := refresher.Snapshot()
	require.Len(t, snapshot.Assets, 1)
	assert.True(t, snapshot.Assets[0].Stale)
	assert.True(t, snapshot.TotalValue.Equal(decimal.NewFromInt(25000)))

	assert.Empty(t, refresher.Analyses())
	// insight still produced from the valuation alone
	assert.NotEmpty(t, refresher.Insight().Text)
}

func TestRunOnceSurvivesSaveFailure(t *testing.T) {
	holdings := domain.Holdings{{Symbol: "BTC", Quantity: decimal.NewFromInt(1)}}
	store := &memorySaver{err: errors.New("disk full")}
	refresher := newTestRefresher(pricer.NewSimulatePricer(testClock), store, holdings)

	require.NoError(t, refresher.RunOnce(context.Background()))
	assert.True(t, refresher.Snapshot().TotalValue.IsPositive())
}
