package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/trovehq/trove/internal/market"
)

// ExpiryWorker periodically closes marketplace listings whose expiry has passed
type ExpiryWorker struct {
	marketSvc     market.Service
	ticker        *time.Ticker
	shutdown      chan struct{}
	wg            sync.WaitGroup
	sweepInterval time.Duration
}

// NewExpiryWorker creates a new listing expiry worker
func NewExpiryWorker(marketSvc market.Service, sweepInterval time.Duration) *ExpiryWorker {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	return &ExpiryWorker{
		marketSvc:     marketSvc,
		shutdown:      make(chan struct{}),
		sweepInterval: sweepInterval,
	}
}

// Start starts the expiry worker
func (w *ExpiryWorker) Start() {
	slog.Info("Starting listing expiry worker", "sweep_interval", w.sweepInterval)

	w.ticker = time.NewTicker(w.sweepInterval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Sweep immediately on startup to catch listings that expired while down
		w.sweep()

		for {
			select {
			case <-w.ticker.C:
				w.sweep()
			case <-w.shutdown:
				slog.Info("Listing expiry worker shutdown signal received")
				return
			}
		}
	}()
}

// sweep closes every due listing and returns escrowed items to sellers.
// Buys racing the sweep are safe: row locks serialize on each listing.
func (w *ExpiryWorker) sweep() {
	ctx := context.Background()

	closed, err := w.marketSvc.ExpireDue(ctx)
	if err != nil {
		slog.Error("Listing expiry sweep failed", "error", err)
		return
	}

	if closed > 0 {
		slog.Info("Listing expiry sweep completed", "closed", closed)
	}
}

// Shutdown gracefully shuts down the worker
func (w *ExpiryWorker) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down listing expiry worker")

	if w.ticker != nil {
		w.ticker.Stop()
	}

	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Listing expiry worker shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("Listing expiry worker shutdown timeout")
		return ctx.Err()
	}
}
