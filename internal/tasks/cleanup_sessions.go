package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// SessionCleaner provides the ability to delete expired session rows.
type SessionCleaner interface {
	DeleteExpired(olderThan time.Time) (int64, error)
}

// CleanupSessionsTask reclaims persisted session rows past their lifetime.
// Lookup-side expiry masks stale rows already; this only frees storage.
type CleanupSessionsTask struct {
	MaxAgeSeconds int64 `json:"max_age_seconds"`
}

// Config returns the queue configuration for session cleanup tasks.
func (t CleanupSessionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_sessions",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupSessionsProcessor creates a processor function for CleanupSessionsTask.
func CleanupSessionsProcessor(cleaner SessionCleaner) backlite.QueueProcessor[CleanupSessionsTask] {
	return func(ctx context.Context, task CleanupSessionsTask) error {
		if cleaner == nil {
			return fmt.Errorf("session cleaner not configured")
		}
		if task.MaxAgeSeconds <= 0 {
			// Sessions without a lifetime are never reclaimed.
			return nil
		}

		cutoff := time.Now().Add(-time.Duration(task.MaxAgeSeconds) * time.Second)
		deleted, err := cleaner.DeleteExpired(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup sessions: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d expired sessions", deleted)
		return nil
	}
}

// NewCleanupSessionsQueue creates a backlite queue for session cleanup tasks.
func NewCleanupSessionsQueue(cleaner SessionCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupSessionsProcessor(cleaner))
}
