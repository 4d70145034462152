package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/platter/internal/state"
)

const (
	defaultProbeInterval = 10 * time.Second
	maxBackoff           = 30 * time.Second
)

// Pinger is the slice of the API client the health probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartProbe launches a background goroutine that records API health in store.
// After failures the wait grows exponentially up to maxBackoff. It returns
// immediately.
func StartProbe(ctx context.Context, store *state.Store, client Pinger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	go func() {
		for {
			probe(ctx, store, client, interval)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. Zero or negative failures return base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func probe(ctx context.Context, store *state.Store, client Pinger, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := client.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}
	store.Record(time.Since(start), err)
	if err != nil {
		slog.Warn("api probe failed", slog.Any("error", err))
	}
}
