// Package scheduler runs the cron-driven maintenance jobs: reclaiming
// expired persisted sessions and enforcing audit retention.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/tasks"
)

// CleanupScheduler periodically enqueues the cleanup tasks on the task
// queue. Actual deletion happens in the queue workers; the scheduler only
// decides when.
type CleanupScheduler struct {
	tasks  *tasks.Client
	config *config.Config

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a new scheduler instance.
func NewCleanupScheduler(taskClient *tasks.Client, cfg *config.Config) *CleanupScheduler {
	return &CleanupScheduler{
		tasks:  taskClient,
		config: cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Cleanup.Enabled {
		log.Printf("Cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Cleanup.Schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.config.Cleanup.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

// RunNow enqueues the cleanup tasks immediately.
func (s *CleanupScheduler) RunNow() {
	s.enqueueCleanup()
}

// IsRunning returns whether the scheduler is active.
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur.
func (s *CleanupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CleanupScheduler) enqueueCleanup() {
	if s.tasks == nil {
		return
	}

	op := s.tasks.Add(
		tasks.CleanupSessionsTask{
			MaxAgeSeconds: int64(s.config.Auth.SessionDuration.Seconds()),
		},
		tasks.CleanupAuditEventsTask{
			RetentionDays: s.config.Audit.RetentionDays,
		},
	)
	if _, err := op.Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue tasks: %v", err)
		return
	}
	log.Printf("Cleanup scheduler: enqueued cleanup tasks")
}
