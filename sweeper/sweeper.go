// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sweeper runs periodic housekeeping next to the API server: overdue
// surveys are moved to expired and fingerprints older than the duplicate
// window are purged. Neither is needed for correctness, since expiry is also
// applied lazily and the guard ignores old fingerprints.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

type Expirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

type Purger interface {
	PurgeFingerprints(ctx context.Context) (int64, error)
}

// Sweep runs one pass. A failing step is logged and does not stop the other.
func Sweep(ctx context.Context, surveys Expirer, fingerprints Purger) {
	if n, err := surveys.ExpireOverdue(ctx); err != nil {
		slog.Error("survey expiry sweep failed", "error", err)
	} else if n > 0 {
		slog.Info("surveys expired", "count", n)
	}

	if n, err := fingerprints.PurgeFingerprints(ctx); err != nil {
		slog.Error("fingerprint purge failed", "error", err)
	} else if n > 0 {
		slog.Info("fingerprints purged", "count", n)
	}
}

// Run sweeps every interval until ctx is done.
func Run(ctx context.Context, interval time.Duration, surveys Expirer, fingerprints Purger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("sweeper started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			Sweep(ctx, surveys, fingerprints)
		}
	}
}
