package models

// GameProgress aggregates the recent runs of a single game.
type GameProgress struct {
	GameID      GameID     `json:"game_id"`
	Runs        int        `json:"runs"`
	LatestScore int        `json:"latest_score"`
	BestScore   int        `json:"best_score"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
}

type ProgressSnapshot struct {
	IntuitionIndex int            `json:"intuition_index"`
	RecentRuns     []RunSummary   `json:"recent_runs"`
	Games          []GameProgress `json:"games"`
}
