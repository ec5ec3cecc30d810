package analytics

import (
	"context"
	"time"

	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
)

const EventGameComplete = "game_complete"

type Event struct {
	Name       string         `json:"name"`
	ProfileID  int64          `json:"profile_id,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Tracker delivers analytics events to a sink.
type Tracker interface {
	Track(ctx context.Context, event Event) error
}

// GameComplete builds the event emitted once per finished session.
func GameComplete(run models.RunSummary) Event {
	props := map[string]any{
		"session_id":          run.SessionID,
		"game_id":             string(run.GameID),
		"score":               run.Score,
		"accuracy":            run.Accuracy,
		"difficulty":          int(run.Difficulty),
		"total_rounds":        run.TotalRounds,
		"attempts":            run.Attempts,
		"streak":              run.Streak,
		"average_response_ms": run.AverageResponseMs,
		"duration_ms":         run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
	}
	for k, v := range run.Metadata {
		if _, taken := props[k]; !taken {
			props[k] = v
		}
	}
	return Event{
		Name:       EventGameComplete,
		ProfileID:  run.ProfileID,
		Properties: props,
		OccurredAt: run.CompletedAt,
	}
}

// LogTracker writes events to the logger found in the context.
type LogTracker struct{}

func NewLogTracker() *LogTracker {
	return &LogTracker{}
}

func (t *LogTracker) Track(ctx context.Context, event Event) error {
	log := logger.FromContext(ctx).WithPrefix("analytics").WithFields(event.Properties)
	if event.ProfileID != 0 {
		log = log.WithField("profile_id", event.ProfileID)
	}
	log.Info("event %s at %s", event.Name, event.OccurredAt.Format(time.RFC3339))
	return nil
}
