package tasks

import "time"

// Config tunes the shared task queue. Per-queue knobs (attempts, backoff,
// timeouts, retention) live on each task's Config() instead.
type Config struct {
	// Workers is how many cleanup tasks may run concurrently. Two is
	// plenty: the queue only ever carries session and audit reclamation.
	Workers int

	// ReleaseAfter is when a claimed but unfinished task is handed back
	// to the queue, e.g. after a crash mid-cleanup.
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite prunes its own completed-task
	// rows.
	CleanupInterval time.Duration
}

// DefaultConfig returns the queue defaults used when the environment does
// not override them.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
