package models

import "time"

// RunSummary is emitted once per completed session.
type RunSummary struct {
	ID                int64          `json:"id,omitempty"`
	SessionID         string         `json:"session_id"`
	ProfileID         int64          `json:"profile_id,omitempty"`
	GameID            GameID         `json:"game_id"`
	StartedAt         time.Time      `json:"started_at"`
	CompletedAt       time.Time      `json:"completed_at"`
	Difficulty        Difficulty     `json:"difficulty"`
	Score             int            `json:"score"`
	Accuracy          float64        `json:"accuracy"`
	TotalRounds       int            `json:"total_rounds"`
	Attempts          int            `json:"attempts"`
	CorrectCount      int            `json:"correct_count"`
	Streak            int            `json:"streak"`
	AverageResponseMs float64        `json:"average_response_ms"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// RunFilter narrows run listings. Zero values mean "no constraint".
type RunFilter struct {
	ProfileID int64
	GameID    GameID
	Since     *time.Time
	Limit     int
	Offset    int
	OrderDir  string
}

// RunResult is what the caller sees after ending a session.
type RunResult struct {
	Summary        RunSummary `json:"summary"`
	NextDifficulty Difficulty `json:"next_difficulty"`
	IntuitionIndex int        `json:"intuition_index"`
}
