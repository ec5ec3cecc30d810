package jobs

import "github.com/vytor/intuition/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueRunCompleted(run models.RunSummary) error
}
