package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/adalabs/parent-dashboard/internal/domain/port/driven"
)

// Sweeper periodically removes expired sessions and login flows so the
// database does not accumulate rows for browsers that never came back.
type Sweeper struct {
	sessions driven.SessionStore
	flows    driven.FlowStore
	interval time.Duration
	sweepCh  chan chan error
}

// NewSweeper creates a new Sweeper with the required dependencies.
func NewSweeper(sessions driven.SessionStore, flows driven.FlowStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		flows:    flows,
		interval: interval,
		sweepCh:  make(chan chan error),
	}
}

// Start begins the sweep loop. It runs an immediate sweep, then sweeps on
// the configured interval, and also serves manual sweep requests. Start
// blocks until the context is canceled.
func (s *Sweeper) Start(ctx context.Context) {
	if err := s.sweep(ctx); err != nil {
		slog.Error("initial sweep failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				slog.Error("sweep failed", "error", err)
			}
		case done := <-s.sweepCh:
			done <- s.sweep(ctx)
		}
	}
}

// Sweep triggers a sweep outside the interval and blocks until it
// completes or the context is canceled.
func (s *Sweeper) Sweep(ctx context.Context) error {
	done := make(chan error, 1)

	select {
	case s.sweepCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sweep removes expired rows from both stores. A failure in one store
// does not prevent sweeping the other; the first error is returned.
func (s *Sweeper) sweep(ctx context.Context) error {
	start := time.Now()
	now := start.UTC()

	var firstErr error

	sessions, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		slog.Error("sweep sessions failed", "error", err)
		firstErr = err
	}

	flows, err := s.flows.DeleteExpired(ctx, now)
	if err != nil {
		slog.Error("sweep login flows failed", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	slog.Info("sweep complete",
		"sessions_removed", sessions,
		"flows_removed", flows,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return firstErr
}
