package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/progress"
)

func run(game models.GameID, score int) models.RunSummary {
	return models.RunSummary{GameID: game, Score: score}
}

func TestTracker_IndexUsesLatestScorePerGame(t *testing.T) {
	tr := progress.NewTracker()

	tr.RecordRun(run(models.GameWordSprint, 2000))
	assert.Equal(t, 100, tr.IntuitionIndex())

	tr.RecordRun(run(models.GameWordSprint, 200))
	assert.Equal(t, 0, tr.IntuitionIndex(), "only the latest run of a game counts")

	tr.RecordRun(run(models.GameAnomalyScout, 2000))
	assert.Equal(t, 50, tr.IntuitionIndex())
}

func TestTracker_ZeroScoresAreExcluded(t *testing.T) {
	tr := progress.NewTracker()
	tr.RecordRun(run(models.GameWordSprint, 2000))
	tr.RecordRun(run(models.GameSignalVsNoise, 0))

	assert.Equal(t, 100, tr.IntuitionIndex())
}

func TestTracker_Windows(t *testing.T) {
	tr := progress.NewTracker()
	for i := 0; i < 30; i++ {
		game := models.GamePatternCompletion
		if i%2 == 1 {
			game = models.GameSignalVsNoise
		}
		tr.RecordRun(run(game, i))
	}

	runs := tr.Runs()
	require.Len(t, runs, progress.MaxRecentRuns)
	assert.Equal(t, 5, runs[0].Score)
	assert.Equal(t, 29, runs[len(runs)-1].Score)

	pattern := tr.GameRuns(models.GamePatternCompletion)
	require.Len(t, pattern, progress.MaxRunsPerGame)
	assert.Equal(t, 10, pattern[0].Score)
	assert.Equal(t, 28, pattern[len(pattern)-1].Score)
}

func TestTracker_Snapshot(t *testing.T) {
	tr := progress.NewTracker()
	tr.RecordRun(run(models.GameWordSprint, 900))
	tr.RecordRun(run(models.GameWordSprint, 1500))
	tr.RecordRun(run(models.GameWordSprint, 1100))
	tr.RecordRun(run(models.GameAnomalyScout, 650))

	snap := tr.Snapshot()

	assert.Equal(t, tr.IntuitionIndex(), snap.IntuitionIndex)
	assert.Len(t, snap.RecentRuns, 4)
	require.Len(t, snap.Games, 2)
	assert.Equal(t, models.GameAnomalyScout, snap.Games[0].GameID)
	assert.Equal(t, models.GameWordSprint, snap.Games[1].GameID)
	assert.Equal(t, 3, snap.Games[1].Runs)
	assert.Equal(t, 1100, snap.Games[1].LatestScore)
	assert.Equal(t, 1500, snap.Games[1].BestScore)
}

func TestTracker_Reset(t *testing.T) {
	tr := progress.NewTracker()
	tr.RecordRun(run(models.GameWordSprint, 1500))

	tr.Reset()

	assert.Equal(t, 0, tr.IntuitionIndex())
	assert.Empty(t, tr.Runs())
	assert.Empty(t, tr.Snapshot().Games)
}
