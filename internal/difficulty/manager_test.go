package difficulty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/intuition/internal/difficulty"
	"github.com/vytor/intuition/internal/models"
)

func TestManager_RegisterRun(t *testing.T) {
	m := difficulty.NewManager(3, 6*time.Second)

	assert.Equal(t, models.Difficulty(4), m.RegisterRun(1.0, 5000))
	assert.Equal(t, models.Difficulty(4), m.RegisterRun(1.0, 7000), "slow runs hold the level")
	assert.Equal(t, models.Difficulty(3), m.RegisterRun(0.3, 5000))
	assert.Equal(t, []models.Difficulty{3, 4, 4, 3}, m.History())
}

func TestManager_HistoryKeepsLastFive(t *testing.T) {
	m := difficulty.NewManager(1, time.Second)
	for i := 0; i < 8; i++ {
		m.RegisterRun(1.0, 100)
	}

	assert.Equal(t, models.Difficulty(9), m.Current())
	assert.Equal(t, []models.Difficulty{5, 6, 7, 8, 9}, m.History())
}

func TestManager_Reset(t *testing.T) {
	m := difficulty.NewManager(2, time.Second)
	m.RegisterRun(1.0, 100)
	m.RegisterRun(1.0, 100)

	m.Reset()

	assert.Equal(t, models.Difficulty(2), m.Current())
	assert.Equal(t, []models.Difficulty{2}, m.History())
}

func TestManager_ClampsInitial(t *testing.T) {
	m := difficulty.NewManager(0, time.Second)
	assert.Equal(t, models.Difficulty(1), m.Current())
}

func TestRestore(t *testing.T) {
	state := models.DifficultyState{
		ProfileID: 1,
		GameID:    models.GameWordSprint,
		Current:   6,
		History:   []models.Difficulty{2, 3, 4, 5, 6, 6, 6},
	}

	m := difficulty.Restore(state, 2, time.Second)

	require.Equal(t, models.Difficulty(6), m.Current())
	assert.Equal(t, []models.Difficulty{4, 5, 6, 6, 6}, m.History())

	exported := m.State(1, models.GameWordSprint)
	assert.Equal(t, models.Difficulty(6), exported.Current)
	assert.Equal(t, models.GameWordSprint, exported.GameID)
}

func TestRestore_EmptyHistory(t *testing.T) {
	m := difficulty.Restore(models.DifficultyState{Current: 4}, 2, time.Second)
	assert.Equal(t, []models.Difficulty{4}, m.History())
}
