package models

// Difficulty is a game difficulty level in [MinDifficulty, MaxDifficulty].
type Difficulty int

const (
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 10
)

// Valid reports whether d lies inside the supported range.
func (d Difficulty) Valid() bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// DifficultyState is the persisted difficulty of one game for one profile.
type DifficultyState struct {
	ProfileID int64        `json:"profile_id"`
	GameID    GameID       `json:"game_id"`
	Current   Difficulty   `json:"current"`
	History   []Difficulty `json:"history"`
}
