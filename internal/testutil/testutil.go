package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/intuition/internal/db"
	"github.com/vytor/intuition/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied
// and foreign keys enabled.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// MustCreateProfile inserts a profile row and returns its id.
func MustCreateProfile(t *testing.T, sqlDB *sql.DB, username string) int64 {
	t.Helper()

	var id int64
	err := sqlDB.QueryRow(`INSERT INTO profiles (username) VALUES (?) RETURNING id`, username).Scan(&id)
	require.NoError(t, err)
	return id
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Run builds a completed run with sensible defaults for tests.
func Run(profileID int64, gameID models.GameID, score int) models.RunSummary {
	return models.RunSummary{
		SessionID:         uuid.NewString(),
		ProfileID:         profileID,
		GameID:            gameID,
		Difficulty:        3,
		Score:             score,
		Accuracy:          1,
		TotalRounds:       3,
		Attempts:          3,
		CorrectCount:      3,
		Streak:            3,
		AverageResponseMs: 6000,
	}
}
