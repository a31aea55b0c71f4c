package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/services"
	"github.com/robfig/cron/v3"
)

// Sweeper periodically expires overdue attempts and purges stale
// verification tokens.
type Sweeper struct {
	cron     *cron.Cron
	attempts services.AttemptService
	auth     services.AuthService
	logger   *slog.Logger
	schedule string
}

func NewSweeper(attempts services.AttemptService, auth services.AuthService, schedule string, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		attempts: attempts,
		auth:     auth,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the sweep job and launches the scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Sweeper started", "schedule", s.schedule)
	return nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := s.attempts.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("Attempt sweep failed", "error", err)
	} else if expired > 0 {
		s.logger.Info("Attempt sweep finished", "expired", expired)
	}

	if _, err := s.auth.PurgeExpiredTokens(ctx); err != nil {
		s.logger.Error("Token purge failed", "error", err)
	}
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Sweeper stopped")
}
