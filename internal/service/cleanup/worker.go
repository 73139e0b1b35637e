package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionStore is the part of the session manager the worker needs.
type SessionStore interface {
	CleanupOldSessions(ttl time.Duration) int
}

type Worker struct {
	Sessions SessionStore
	TTL      time.Duration
	Interval time.Duration
	logger   zerolog.Logger
}

func NewWorker(sessions SessionStore, ttl, interval time.Duration, logger zerolog.Logger) *Worker {
	return &Worker{Sessions: sessions, TTL: ttl, Interval: interval, logger: logger}
}

// Run cleans up once immediately, then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	w.logger.Info().Dur("interval", w.Interval).Dur("ttl", w.TTL).Msg("background worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupOldSessions(w.TTL)
	if removed > 0 {
		w.logger.Info().Int("removed", removed).Msg("removed stale sessions")
	}
}
