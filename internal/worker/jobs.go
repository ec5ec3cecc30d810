package worker

import (
	"context"
	"fmt"

	"github.com/vytor/intuition/internal/analytics"
)

// TrackEventJob forwards one analytics event to a tracker.
type TrackEventJob struct {
	Tracker analytics.Tracker
	Event   analytics.Event
}

func (j *TrackEventJob) Name() string { return "track_event" }

func (j *TrackEventJob) Run(ctx context.Context) error {
	if err := j.Tracker.Track(ctx, j.Event); err != nil {
		return fmt.Errorf("track %s: %w", j.Event.Name, err)
	}
	return nil
}
