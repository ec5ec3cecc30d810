package models

import "time"

// GameID identifies one of the mini-games.
type GameID string

const (
	GamePatternCompletion GameID = "pattern-completion"
	GameSignalVsNoise     GameID = "signal-vs-noise"
	GameWordSprint        GameID = "word-sprint"
	GameAnomalyScout      GameID = "anomaly-scout"
)

// GameMode is the play style tag attached to run metadata.
type GameMode string

const (
	ModeTimed     GameMode = "timed"
	ModeStreak    GameMode = "streak"
	ModePrecision GameMode = "precision"
)

type GameMeta struct {
	ID                GameID        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	PrimaryColor      string        `json:"primary_color"`
	AccentColor       string        `json:"accent_color"`
	Gradient          []string      `json:"gradient"`
	Mode              GameMode      `json:"mode"`
	Icon              string        `json:"icon"`
	TargetDuration    time.Duration `json:"-"`
	InitialDifficulty Difficulty    `json:"initial_difficulty"`
}

// PerRoundTarget splits the game's target duration evenly across rounds.
func (m GameMeta) PerRoundTarget(rounds int) time.Duration {
	if rounds < 1 {
		rounds = 1
	}
	return m.TargetDuration / time.Duration(rounds)
}
