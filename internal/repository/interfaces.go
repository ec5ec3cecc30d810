package repository

import (
	"context"

	"github.com/vytor/intuition/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string) (*models.Profile, error)
	Update(ctx context.Context, id int64, update models.ProfileUpdate) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// RunRepository stores completed game runs.
type RunRepository interface {
	Insert(ctx context.Context, run models.RunSummary) (int64, error)
	List(ctx context.Context, filter models.RunFilter) ([]models.RunSummary, error)
	Count(ctx context.Context, filter models.RunFilter) (int, error)
}

// DifficultyRepository stores the adaptive difficulty per profile and game.
type DifficultyRepository interface {
	Get(ctx context.Context, profileID int64, gameID models.GameID) (*models.DifficultyState, error)
	List(ctx context.Context, profileID int64) ([]models.DifficultyState, error)
	Save(ctx context.Context, state models.DifficultyState) error
}
