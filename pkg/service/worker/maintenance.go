package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/service/knowledge"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

// MaintenanceWorker periodically reloads the knowledge corpus from disk and
// prunes conversation sessions idle beyond the retention window. One-off
// sessions from market analysis and price estimation accumulate in the
// repository; the pruning pass bounds that growth.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type MaintenanceWorker struct {
	repo     interfaces.Repository
	store    *knowledge.Store
	interval time.Duration
	maxIdle  time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewMaintenanceWorker creates a worker running one maintenance cycle per
// interval. Sessions untouched for longer than maxIdle are deleted.
func NewMaintenanceWorker(repo interfaces.Repository, store *knowledge.Store, interval, maxIdle time.Duration) *MaintenanceWorker {
	return &MaintenanceWorker{
		repo:     repo,
		store:    store,
		interval: interval,
		maxIdle:  maxIdle,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background maintenance loop
// - Initial cycle and periodic cycles both run in a background goroutine
// - Does not block server startup
func (w *MaintenanceWorker) Start(ctx context.Context) error {
	logging.Default().Info("Maintenance worker starting",
		"interval", w.interval.String(),
		"session_max_idle", w.maxIdle.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *MaintenanceWorker) Stop() {
	logging.Default().Info("Maintenance worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Maintenance worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *MaintenanceWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial cycle warms the corpus so the first requests already search a
	// loaded snapshot.
	if err := w.maintain(ctx); err != nil {
		logging.Default().Error("Initial maintenance cycle failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.maintain(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Maintenance cycle failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Maintenance worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Maintenance worker context cancelled")
			return
		}
	}
}

// maintain performs a single maintenance cycle
func (w *MaintenanceWorker) maintain(ctx context.Context) error {
	startTime := time.Now()

	// A missing corpus directory must not stop session pruning.
	if err := w.store.Load(ctx); err != nil {
		errutil.Handle(ctx, err, "knowledge corpus reload failed")
	}

	pruned, err := w.pruneSessions(ctx)
	if err != nil {
		return err
	}

	logging.Default().Info("Maintenance cycle completed",
		"pruned_sessions", pruned,
		"duration", time.Since(startTime).String())

	return nil
}

func (w *MaintenanceWorker) pruneSessions(ctx context.Context) (int, error) {
	ids, err := w.repo.ListSessionIDs(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list sessions")
	}

	deadline := time.Now().Add(-w.maxIdle)
	pruned := 0
	for _, id := range ids {
		session, err := w.repo.GetSession(ctx, id)
		if err != nil {
			// Cleared concurrently
			continue
		}
		if session.UpdatedAt.Before(deadline) {
			if err := w.repo.DeleteSession(ctx, id); err != nil {
				return pruned, goerr.Wrap(err, "failed to delete idle session",
					goerr.V("conversation_id", id))
			}
			pruned++
		}
	}
	return pruned, nil
}
