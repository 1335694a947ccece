package finder

import (
	"context"
	"time"

	"retroFinder/pkg/logger"
)

// ExpiringStore is a session store that needs expired sessions swept.
type ExpiringStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunSessionGC purges expired sessions every interval until ctx is done.
func RunSessionGC(ctx context.Context, store ExpiringStore, interval time.Duration) {
	if store == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("finder_session_gc_failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("finder_session_gc", "purged", n)
			}
		}
	}
}
