// Command coinpulse runs the portfolio valuation and technical analysis
// engine with its dashboard server.
//
// Usage:
//
//	coinpulse --config config.yaml
//	coinpulse --holdings BTC:0.5,ETH:2 --simulate
//
// Optional environment variables:
//
//	LLM_API_KEY: API key for the advisory text generator. Without it the
//	deterministic rule-based commentary is used.
package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/config"
	"github.com/coinpulse/coinpulse/internal/app"
	"github.com/coinpulse/coinpulse/internal/clients"
	"github.com/coinpulse/coinpulse/internal/services/advisor"
	"github.com/coinpulse/coinpulse/internal/services/analysis"
	"github.com/coinpulse/coinpulse/internal/services/portfolio"
	"github.com/coinpulse/coinpulse/internal/services/pricer"
	"github.com/coinpulse/coinpulse/internal/services/promptbuilder"
	"github.com/coinpulse/coinpulse/internal/storage/snapshots"
	"github.com/coinpulse/coinpulse/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var feed pricer.Pricer
	if cfg.Simulate {
		feed = pricer.NewSimulatePricer(nil)
	} else {
		feed = pricer.NewGeckoPricer(cfg.ProviderBaseURL, logger)
	}

	var llm clients.LLMClient
	if cfg.LLMAPIKey != "" && cfg.LLMAPIURL != "" {
		llm = clients.NewOpenAICompatibleClient(
			cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel,
			promptbuilder.NewPromptBuilder(logger),
		)
	}

	store, err := snapshots.NewWALStore(cfg.SnapshotDir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	refresher := app.NewRefresher(
		feed,
		analysis.NewAnalyzer(logger),
		portfolio.NewReconciler(logger),
		portfolio.NewHistoryEstimator(rand.NewSource(time.Now().UnixNano()), nil),
		advisor.New(llm, logger),
		store,
		cfg.Holdings,
		cfg.SeriesDays,
		logger,
	)

	server := web.NewServer(cfg.ListenAddr, store, refresher)
	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Error("dashboard server stopped", zap.Error(err))
		}
	}()

	logger.Info("coinpulse started",
		zap.Int("holdings", len(cfg.Holdings)),
		zap.Duration("refresh", cfg.RefreshInterval),
		zap.Bool("simulate", cfg.Simulate))

	if err := refresher.Start(ctx, cfg.RefreshInterval.String()); err != nil {
		logger.Fatal("refresh loop failed", zap.Error(err))
	}
}
