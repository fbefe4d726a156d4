package account

import (
	"context"
	"log/slog"
	"time"
)

// Reaper periodically deletes accounts whose signup OTP lapsed before
// verification completed. It is owned by the process lifecycle: started at
// init, stopped by cancelling the context passed to Start.
type Reaper struct {
	repo     AccountRepository
	interval time.Duration
}

// ReaperOption defines configuration options
type ReaperOption func(*Reaper)

// WithInterval sets the sweep period
func WithInterval(interval time.Duration) ReaperOption {
	return func(r *Reaper) {
		r.interval = interval
	}
}

// NewReaper creates a new expiry reaper
func NewReaper(repo AccountRepository, opts ...ReaperOption) *Reaper {
	reaper := &Reaper{
		repo:     repo,
		interval: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(reaper)
	}

	return reaper
}

// Start runs the sweep loop in a goroutine until ctx is cancelled. A failed
// sweep is logged and retried on the next tick.
func (r *Reaper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		slog.Info("Expiry reaper started", "interval", r.interval)
		for {
			select {
			case <-ctx.Done():
				slog.Info("Expiry reaper stopped")
				return
			case <-ticker.C:
				if err := r.Sweep(ctx); err != nil {
					slog.Error("Expiry sweep failed", "error", err)
				}
			}
		}
	}()
}

// Sweep deletes all accounts with a lapsed signup OTP in one batch.
func (r *Reaper) Sweep(ctx context.Context) error {
	count, err := r.repo.DeleteExpiredOtp(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Deleted expired unverified accounts", "count", count)
	}
	return nil
}
