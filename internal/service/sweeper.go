package service

import (
	"context"
	"time"

	"secure_notes/internal/logger"
	"secure_notes/internal/repository"
)

// SweeperService purges sessions that can no longer authenticate anything.
type SweeperService struct {
	sessions repository.SessionRepo
	// retention keeps dead rows around this long before they are purged
	retention time.Duration
	now       func() time.Time
	log       *logger.Logger
}

func NewSweeperService(sessions repository.SessionRepo, retention time.Duration, now func() time.Time, log *logger.Logger) *SweeperService {
	if now == nil {
		now = time.Now
	}
	return &SweeperService{sessions: sessions, retention: retention, now: now, log: log}
}

// Run sweeps at the given interval until ctx is canceled.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Sweep(ctx)
			if s.log == nil {
				continue
			}
			if err != nil {
				s.log.Errorw("session_sweep_failed", "err", err)
				continue
			}
			if n > 0 {
				s.log.Infow("session_sweep", "deleted", n)
			}
		}
	}
}

// Sweep deletes sessions that expired or were logged out more than retention ago.
func (s *SweeperService) Sweep(ctx context.Context) (int64, error) {
	return s.sessions.DeleteStale(ctx, s.now().UTC().Add(-s.retention))
}
