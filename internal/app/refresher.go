// Package app wires the pricer, analyzer, reconciler and advisor into the
// periodic refresh pipeline behind the dashboard.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
	"github.com/coinpulse/coinpulse/internal/services/advisor"
	"github.com/coinpulse/coinpulse/internal/services/analysis"
	"github.com/coinpulse/coinpulse/internal/services/portfolio"
	"github.com/coinpulse/coinpulse/internal/services/pricer"
)

const historyDays = 30

type snapshotSaver interface {
	Save(snapshot domain.ValuationSnapshot) error
}

// Refresher runs the refresh pipeline: fetch prices, analyze the primary
// series, reconcile the valuation, generate commentary, persist the
// snapshot. The pipeline itself is stateless; Refresher only caches the
// latest results for the dashboard read surface.
type Refresher struct {
	pricer     pricer.Pricer
	analyzer   *analysis.Analyzer
	reconciler *portfolio.Reconciler
	historian  *portfolio.HistoryEstimator
	advisor    *advisor.Advisor
	store      snapshotSaver
	holdings   domain.Holdings
	seriesDays int
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot domain.ValuationSnapshot
	analyses []*domain.Analysis
	insight  domain.AdvisoryInsight
	history  []domain.HistoricalPoint
}

// NewRefresher creates the refresh pipeline. store may be nil when snapshot
// persistence is disabled.
func NewRefresher(
	p pricer.Pricer,
	analyzer *analysis.Analyzer,
	reconciler *portfolio.Reconciler,
	historian *portfolio.HistoryEstimator,
	adv *advisor.Advisor,
	store snapshotSaver,
	holdings domain.Holdings,
	seriesDays int,
	logger *zap.Logger,
) *Refresher {
	if seriesDays <= 0 {
		seriesDays = historyDays
	}
	return &Refresher{
		pricer:     p,
		analyzer:   analyzer,
		reconciler: reconciler,
		historian:  historian,
		advisor:    adv,
		store:      store,
		holdings:   holdings,
		seriesDays: seriesDays,
		logger:     logger,
	}
}

// RunOnce executes one refresh cycle. Per-symbol failures degrade that
// symbol (stale valuation, no analysis) instead of failing the cycle.
func (r *Refresher) RunOnce(ctx context.Context) error {
	symbols := make([]string, len(r.holdings))
	for i, h := range r.holdings {
		symbols[i] = h.Symbol
	}

	quotes, err := r.pricer.Quotes(ctx, symbols)
	if err != nil {
		r.logger.Warn("quote fetch failed, valuing from cached prices", zap.Error(err))
		quotes = map[string]domain.Quote{}
	}

	snapshot := r.reconciler.Reconcile(r.holdings, quotes)
	history := r.historian.Backfill(snapshot.TotalValue, r.seriesDays)

	analyses := make([]*domain.Analysis, 0, len(symbols))
	for _, symbol := range symbols {
		series, volumes, err := r.pricer.Series(ctx, symbol, r.seriesDays)
		if err != nil {
			r.logger.Warn("series fetch failed, skipping analysis",
				zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		result, err := r.analyzer.Comprehensive(symbol, series, volumes)
		if err != nil {
			r.logger.Warn("analysis failed", zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		analyses = append(analyses, result)
	}

	var primary *domain.Analysis
	if len(analyses) > 0 {
		primary = analyses[0]
	}
	insight := r.advisor.Insight(ctx, primary, snapshot)

	if r.store != nil {
		if err := r.store.Save(snapshot); err != nil {
			r.logger.Warn("snapshot save failed", zap.Error(err))
		}
	}

	r.mu.Lock()
	r.snapshot = snapshot
	r.analyses = analyses
	r.insight = insight
	r.history = history
	r.mu.Unlock()

	r.logger.Info("refresh cycle complete",
		zap.Int("assets", len(snapshot.Assets)),
		zap.Int("analyses", len(analyses)),
		zap.String("total", snapshot.TotalValue.StringFixed(2)))
	return nil
}

// Start runs an immediate refresh, then schedules one per interval until
// ctx is cancelled. Overlapping runs are harmless, the pipeline holds no
// mutable state between cycles.
func (r *Refresher) Start(ctx context.Context, every string) error {
	if err := r.RunOnce(ctx); err != nil {
		return err
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(fmt.Sprintf("@every %s", every), func() {
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

// Snapshot returns the latest valuation snapshot.
func (r *Refresher) Snapshot() domain.ValuationSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Analyses returns the latest per-symbol analyses.
func (r *Refresher) Analyses() []*domain.Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.analyses
}

// Insight returns the latest advisory commentary.
func (r *Refresher) Insight() domain.AdvisoryInsight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.insight
}

// History returns the latest synthetic value series.
func (r *Refresher) History() []domain.HistoricalPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history
}
