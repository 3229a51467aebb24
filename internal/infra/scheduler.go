package infra

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"sahamwatch/internal/domain"
)

// Scheduler manages scheduled maintenance tasks. The quote cache is
// deliberately not refreshed here: staleness is checked lazily on reads.
type Scheduler struct {
	cron        *cron.Cron
	sessionRepo domain.SessionRepository
	log         zerolog.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(sessionRepo domain.SessionRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
		log:         log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the maintenance jobs and starts the cron scheduler
func (s *Scheduler) Start() error {
	// Purge expired sessions hourly
	_, err := s.cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := s.sessionRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("Session cleanup failed")
			return
		}
		if deleted > 0 {
			s.log.Info().Int("deleted", deleted).Msg("Purged expired sessions")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("Scheduler stopped")
}
