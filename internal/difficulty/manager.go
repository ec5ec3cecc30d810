package difficulty

import (
	"time"

	"github.com/vytor/intuition/internal/models"
)

// historyLimit is the number of levels kept for trend display.
const historyLimit = 5

// Manager tracks the running difficulty of one game and its recent history.
// It is owned by a single caller and is not safe for concurrent use.
type Manager struct {
	initial models.Difficulty
	target  time.Duration
	current models.Difficulty
	history []models.Difficulty
}

// NewManager starts a manager at initial, judging response times against target.
func NewManager(initial models.Difficulty, target time.Duration) *Manager {
	initial = Clamp(int(initial))
	return &Manager{
		initial: initial,
		target:  target,
		current: initial,
		history: []models.Difficulty{initial},
	}
}

// Restore rebuilds a manager from persisted state. An empty history is
// seeded with the current level.
func Restore(state models.DifficultyState, initial models.Difficulty, target time.Duration) *Manager {
	m := NewManager(initial, target)
	m.current = Clamp(int(state.Current))
	if len(state.History) > 0 {
		m.history = make([]models.Difficulty, 0, len(state.History))
		for _, level := range state.History {
			m.history = append(m.history, Clamp(int(level)))
		}
		m.trim()
	} else {
		m.history = []models.Difficulty{m.current}
	}
	return m
}

func (m *Manager) Current() models.Difficulty { return m.current }

// History returns a copy of the recent levels, oldest first.
func (m *Manager) History() []models.Difficulty {
	out := make([]models.Difficulty, len(m.history))
	copy(out, m.history)
	return out
}

// RegisterRun applies Next to the current level and records the result.
func (m *Manager) RegisterRun(accuracy, averageResponseMs float64) models.Difficulty {
	targetMs := float64(m.target) / float64(time.Millisecond)
	m.current = Next(m.current, accuracy, averageResponseMs, targetMs)
	m.history = append(m.history, m.current)
	m.trim()
	return m.current
}

// Reset returns to the initial level and clears the history.
func (m *Manager) Reset() {
	m.current = m.initial
	m.history = []models.Difficulty{m.initial}
}

// State exports the manager for persistence.
func (m *Manager) State(profileID int64, gameID models.GameID) models.DifficultyState {
	return models.DifficultyState{
		ProfileID: profileID,
		GameID:    gameID,
		Current:   m.current,
		History:   m.History(),
	}
}

func (m *Manager) trim() {
	if len(m.history) > historyLimit {
		m.history = append([]models.Difficulty(nil), m.history[len(m.history)-historyLimit:]...)
	}
}
