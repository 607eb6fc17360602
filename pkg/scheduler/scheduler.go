// Package scheduler runs the ingestion pipeline on demand and on a timer.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/leadfeed/pkg/domain"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester

// Ingester runs ingestion of all active feeds
type Ingester interface {
	IngestAllActiveFeeds(ctx context.Context) (domain.IngestSummary, error)
}

// Scheduler triggers ingestion of all active feeds periodically and on request
type Scheduler struct {
	ingester       Ingester
	updateInterval time.Duration
	updateNow      chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler, the update interval defaults to 30 minutes
func NewScheduler(ingester Ingester, updateInterval time.Duration) *Scheduler {
	if updateInterval <= 0 {
		updateInterval = 30 * time.Minute
	}
	return &Scheduler{
		ingester:       ingester,
		updateInterval: updateInterval,
		updateNow:      make(chan struct{}, 1),
	}
}

// Start runs the first ingestion immediately and then on every tick until Stop or ctx cancellation
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return // already running
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.feedUpdateWorker(ctx)
	lgr.Printf("[INFO] scheduler started with update interval %v", s.updateInterval)
}

// Stop cancels the running ingestion and waits for the worker to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	lgr.Printf("[INFO] stopping scheduler...")
	cancel()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// UpdateNow requests an out-of-band ingestion run. Requests made while a run is pending are merged.
func (s *Scheduler) UpdateNow() {
	select {
	case s.updateNow <- struct{}{}:
	default:
	}
}

// feedUpdateWorker periodically ingests all active feeds
func (s *Scheduler) feedUpdateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.updateNow:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.ingester.IngestAllActiveFeeds(ctx); err != nil {
		lgr.Printf("[ERROR] scheduled ingestion failed: %v", err)
	}
}
