// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/avoronov/bookcatalog/internal/config"
	"github.com/avoronov/bookcatalog/internal/database/tokens"
)

// staleTokenRetention is how long expired or revoked tokens stay in the
// table before deletion, so recent rejections remain inspectable.
const staleTokenRetention = 7 * 24 * time.Hour

// TokenCleanupScheduler periodically marks expired tokens and deletes stale
// ones.
type TokenCleanupScheduler struct {
	repo *tokens.Repository
	cfg  config.TokenCleanup

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewTokenCleanupScheduler creates a new scheduler instance.
func NewTokenCleanupScheduler(db *gorm.DB, cfg config.TokenCleanup) *TokenCleanupScheduler {
	return &TokenCleanupScheduler{
		repo: tokens.NewRepository(db),
		cfg:  cfg,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *TokenCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		log.Printf("Token cleanup scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule token cleanup '%s': %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Token cleanup scheduler: started with schedule '%s'", s.cfg.Schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *TokenCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Token cleanup scheduler: stopped")
}

func (s *TokenCleanupScheduler) runCleanup() {
	now := time.Now()

	marked, err := s.repo.MarkExpired(now)
	if err != nil {
		log.Printf("Token cleanup: failed to mark expired tokens: %v", err)
		return
	}

	deleted, err := s.repo.DeleteStale(now.Add(-staleTokenRetention))
	if err != nil {
		log.Printf("Token cleanup: failed to delete stale tokens: %v", err)
		return
	}

	if marked > 0 || deleted > 0 {
		log.Printf("Token cleanup: marked %d expired, deleted %d stale", marked, deleted)
	}
}
