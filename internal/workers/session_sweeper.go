package workers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
)

// SessionSweeper purges expired sessions once on start and then every
// interval until its context is done.
type SessionSweeper struct {
	purger   SessionPurger
	interval time.Duration
	logger   *logger.Logger
	started  atomic.Bool
	done     chan struct{}
}

func NewSessionSweeper(purger SessionPurger, interval time.Duration, log *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		purger:   purger,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Run starts the sweep loop. Only the first call has an effect.
func (s *SessionSweeper) Run(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.loop(ctx)
}

// Done is closed once the sweeper has stopped.
func (s *SessionSweeper) Done() <-chan struct{} {
	return s.done
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer close(s.done)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "SessionSweeper.sweep").Msg("failed to purge expired sessions")
		return
	}
	if n > 0 {
		s.logger.Info().Str("func", "SessionSweeper.sweep").Int("purged", n).Msg("expired sessions purged")
	}
}
