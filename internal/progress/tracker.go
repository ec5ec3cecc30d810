// Package progress keeps the recent-run window that feeds the intuition index.
package progress

import (
	"slices"

	"github.com/vytor/intuition/internal/intuition"
	"github.com/vytor/intuition/internal/models"
)

const (
	MaxRecentRuns  = 25
	MaxRunsPerGame = 10
)

// Tracker holds recent runs for one profile. It is an explicitly owned
// value; callers build one per profile and are responsible for serialising
// access to it.
type Tracker struct {
	runs   []models.RunSummary
	byGame map[models.GameID][]models.RunSummary
	index  int
}

func NewTracker() *Tracker {
	return &Tracker{byGame: make(map[models.GameID][]models.RunSummary)}
}

// RecordRun appends a completed run, trims the windows and recomputes the
// intuition index over each game's latest positive score.
func (t *Tracker) RecordRun(run models.RunSummary) {
	t.runs = appendWindow(t.runs, run, MaxRecentRuns)
	t.byGame[run.GameID] = appendWindow(t.byGame[run.GameID], run, MaxRunsPerGame)
	t.index = intuition.ComputeIndex(t.latestScores(), nil)
}

func (t *Tracker) IntuitionIndex() int { return t.index }

// Runs returns the recent runs, oldest first.
func (t *Tracker) Runs() []models.RunSummary {
	return slices.Clone(t.runs)
}

// GameRuns returns the recent runs of one game, oldest first.
func (t *Tracker) GameRuns(id models.GameID) []models.RunSummary {
	return slices.Clone(t.byGame[id])
}

// Snapshot summarises the tracker for display. Games are sorted by id.
func (t *Tracker) Snapshot() models.ProgressSnapshot {
	snap := models.ProgressSnapshot{
		IntuitionIndex: t.index,
		RecentRuns:     t.Runs(),
	}
	for _, id := range t.gameIDs() {
		runs := t.byGame[id]
		gp := models.GameProgress{
			GameID:      id,
			Runs:        len(runs),
			LatestScore: runs[len(runs)-1].Score,
		}
		for _, r := range runs {
			gp.BestScore = max(gp.BestScore, r.Score)
		}
		snap.Games = append(snap.Games, gp)
	}
	return snap
}

func (t *Tracker) Reset() {
	t.runs = nil
	t.byGame = make(map[models.GameID][]models.RunSummary)
	t.index = 0
}

func (t *Tracker) latestScores() []float64 {
	var scores []float64
	for _, id := range t.gameIDs() {
		runs := t.byGame[id]
		if score := runs[len(runs)-1].Score; score > 0 {
			scores = append(scores, float64(score))
		}
	}
	return scores
}

func (t *Tracker) gameIDs() []models.GameID {
	ids := make([]models.GameID, 0, len(t.byGame))
	for id, runs := range t.byGame {
		if len(runs) > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func appendWindow(runs []models.RunSummary, run models.RunSummary, limit int) []models.RunSummary {
	runs = append(runs, run)
	if len(runs) > limit {
		runs = slices.Clone(runs[len(runs)-limit:])
	}
	return runs
}
