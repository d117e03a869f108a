// Package cleanup hosts the background sweeper that clears expired
// password-reset codes, so stale codes do not linger in the users table
// between reset attempts.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/metrics"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	users  repository.UserRepository
	sched  cron.Schedule
	ttl    time.Duration
	logger *slog.Logger
}

// NewSweeper validates cronExpr (standard 5-field syntax) and returns a
// sweeper that clears codes older than ttl on that schedule.
func NewSweeper(users repository.UserRepository, cronExpr string, ttl time.Duration, logger *slog.Logger) (*Sweeper, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cleanup cron %q: %w", cronExpr, err)
	}
	return &Sweeper{
		users:  users,
		sched:  sched,
		ttl:    ttl,
		logger: logger.With("component", "cleanup"),
	}, nil
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("cleanup sweeper started", "ttl", s.ttl)

	for {
		timer := time.NewTimer(time.Until(s.sched.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("cleanup sweeper shut down")
			return
		case <-timer.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep clears every verification code issued before now minus the TTL.
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.ttl)

	cleared, err := s.users.ClearExpiredVerificationCodes(ctx, cutoff)
	if err != nil {
		s.logger.Error("clear expired verification codes", "error", err)
		return
	}
	if cleared > 0 {
		metrics.ExpiredCodesClearedTotal.Add(float64(cleared))
		s.logger.Info("cleared expired verification codes", "count", cleared)
	}
}
