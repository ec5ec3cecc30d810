package models

// SessionStatus is the lifecycle state of a game session.
type SessionStatus string

const (
	StatusTutorial SessionStatus = "tutorial"
	StatusActive   SessionStatus = "active"
	StatusSummary  SessionStatus = "summary"
)

// SessionState is the live, render-facing view of a game session.
type SessionState struct {
	SessionID     string        `json:"session_id"`
	GameID        GameID        `json:"game_id"`
	Status        SessionStatus `json:"status"`
	RoundIndex    int           `json:"round_index"`
	Score         int           `json:"score"`
	Streak        int           `json:"streak"`
	Accuracy      float64       `json:"accuracy"`
	Difficulty    Difficulty    `json:"difficulty"`
	SelectedIndex *int          `json:"selected_index"`
	ElapsedMs     int64         `json:"elapsed_ms"`
	Rounds        []Round       `json:"rounds"`
}

// CurrentRound returns the round at RoundIndex, or false when out of range.
func (s SessionState) CurrentRound() (Round, bool) {
	if s.RoundIndex < 0 || s.RoundIndex >= len(s.Rounds) {
		return Round{}, false
	}
	return s.Rounds[s.RoundIndex], true
}

// RoundOutcome describes the effect of a single accepted selection.
type RoundOutcome struct {
	RoundIndex     int   `json:"round_index"`
	SelectedIndex  int   `json:"selected_index"`
	Correct        bool  `json:"correct"`
	Delta          int   `json:"delta"`
	Combo          int   `json:"combo"`
	ResponseTimeMs int64 `json:"response_time_ms"`
}
