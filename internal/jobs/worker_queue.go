package jobs

import (
	"github.com/vytor/intuition/internal/analytics"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	eventPool *worker.Pool
	tracker   analytics.Tracker
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(eventPool *worker.Pool, tracker analytics.Tracker) JobQueue {
	return &WorkerQueue{
		eventPool: eventPool,
		tracker:   tracker,
	}
}

func (q *WorkerQueue) EnqueueRunCompleted(run models.RunSummary) error {
	return q.eventPool.Submit(&worker.TrackEventJob{
		Tracker: q.tracker,
		Event:   analytics.GameComplete(run),
	})
}
