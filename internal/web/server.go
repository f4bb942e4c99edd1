// Package web exposes the in-process read surface for the dashboard UI:
// JSON endpoints for the latest computed state and an SSE stream of
// valuation snapshots.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const snapshotPollInterval = 2 * time.Second

type snapshotReader interface {
	SnapshotsAfter(index uint64) ([]domain.ValuationRecord, error)
}

type stateReader interface {
	Snapshot() domain.ValuationSnapshot
	Analyses() []*domain.Analysis
	Insight() domain.AdvisoryInsight
	History() []domain.HistoricalPoint
}

// Server exposes HTTP endpoints serving the dashboard data.
type Server struct {
	Addr  string
	Store snapshotReader
	State stateReader
}

// NewServer creates a new web server instance.
func NewServer(addr string, store snapshotReader, state stateReader) *Server {
	return &Server{Addr: addr, Store: store, State: state}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/insight", s.handleInsight)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/portfolio/stream", s.handleSnapshotStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if s.State == nil {
		http.Error(w, "state not available", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.State.Snapshot())
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.State == nil {
		http.Error(w, "state not available", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.State.Analyses())
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	if s.State == nil {
		http.Error(w, "state not available", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.State.Insight())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.State == nil {
		http.Error(w, "state not available", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.State.History())
}

func (s *Server) handleSnapshotStream(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "snapshot store not available", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(snapshotPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendSnapshots := func() error {
		records, err := s.Store.SnapshotsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Snapshot)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			lastIndex = record.Index
		}
		if len(records) > 0 {
			flusher.Flush()
		}
		return nil
	}

	if err := sendSnapshots(); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendSnapshots(); err != nil {
				return
			}
		}
	}
}
