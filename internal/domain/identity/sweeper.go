package identity

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically lifts expired suspensions.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweeper(svc *Service, interval time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{svc: svc, interval: interval, logger: logger}
}

// Start runs the sweep loop until ctx is cancelled. It sweeps once
// immediately so suspensions that expired while the server was down are
// lifted without waiting a full interval.
func (s *Sweeper) Start(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("suspension sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.svc.ReactivateExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("suspension sweep failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int("reactivated", n).Msg("suspension sweep complete")
	}
}
