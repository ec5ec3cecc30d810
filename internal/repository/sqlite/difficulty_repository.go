package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
)

type difficultyRepository struct {
	db *sql.DB
}

// NewDifficultyRepository creates a new DifficultyRepository implementation
func NewDifficultyRepository(db *sql.DB) repository.DifficultyRepository {
	return &difficultyRepository{db: db}
}

func scanDifficulty(row rowScanner) (*models.DifficultyState, error) {
	var (
		state   models.DifficultyState
		gameID  string
		level   int
		history string
	)
	if err := row.Scan(&state.ProfileID, &gameID, &level, &history); err != nil {
		return nil, err
	}
	state.GameID = models.GameID(gameID)
	state.Current = models.Difficulty(level)
	if err := json.Unmarshal([]byte(history), &state.History); err != nil {
		return nil, fmt.Errorf("decode difficulty history: %w", err)
	}
	return &state, nil
}

// Get returns nil without error when no level has been stored yet.
func (r *difficultyRepository) Get(ctx context.Context, profileID int64, gameID models.GameID) (*models.DifficultyState, error) {
	log := logger.FromContext(ctx).WithPrefix("difficulty_repo")
	log.Debug("getting difficulty: profile_id=%d, game_id=%s", profileID, gameID)

	state, err := scanDifficulty(r.db.QueryRowContext(ctx, `
SELECT profile_id, game_id, level, history
FROM difficulty_levels
WHERE profile_id = ? AND game_id = ?
`, profileID, string(gameID)))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stored difficulty: profile_id=%d, game_id=%s", profileID, gameID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get difficulty: %v", err)
		return nil, err
	}
	return state, nil
}

func (r *difficultyRepository) List(ctx context.Context, profileID int64) ([]models.DifficultyState, error) {
	log := logger.FromContext(ctx).WithPrefix("difficulty_repo")
	log.Debug("listing difficulty levels: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT profile_id, game_id, level, history
FROM difficulty_levels
WHERE profile_id = ?
ORDER BY game_id ASC
`, profileID)
	if err != nil {
		log.Error("failed to list difficulty levels: %v", err)
		return nil, err
	}
	defer rows.Close()

	var states []models.DifficultyState
	for rows.Next() {
		state, err := scanDifficulty(rows)
		if err != nil {
			log.Error("failed to scan difficulty row: %v", err)
			return nil, err
		}
		states = append(states, *state)
	}
	return states, rows.Err()
}

func (r *difficultyRepository) Save(ctx context.Context, state models.DifficultyState) error {
	log := logger.FromContext(ctx).WithPrefix("difficulty_repo")
	log.Debug("saving difficulty: profile_id=%d, game_id=%s, level=%d", state.ProfileID, state.GameID, state.Current)

	history := state.History
	if history == nil {
		history = []models.Difficulty{}
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode difficulty history: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO difficulty_levels (profile_id, game_id, level, history, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(profile_id, game_id) DO UPDATE SET
    level = excluded.level,
    history = excluded.history,
    updated_at = excluded.updated_at
`, state.ProfileID, string(state.GameID), int(state.Current), string(raw))
	if err != nil {
		log.Error("failed to save difficulty: %v", err)
	}
	return err
}
