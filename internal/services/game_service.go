package services

import (
	"context"

	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/games"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
)

// GameService exposes the game catalog and each profile's difficulty levels.
type GameService interface {
	ListGames(ctx context.Context) []models.GameMeta
	GetGame(ctx context.Context, id models.GameID) (models.GameMeta, error)
	GetDifficulty(ctx context.Context, profileID int64, id models.GameID) (models.DifficultyState, error)
}

type gameService struct {
	difficultyRepo repository.DifficultyRepository
}

// NewGameService creates a new GameService
func NewGameService(difficultyRepo repository.DifficultyRepository) GameService {
	return &gameService{difficultyRepo: difficultyRepo}
}

func (s *gameService) ListGames(ctx context.Context) []models.GameMeta {
	logger.FromContext(ctx).Debug("listing games")
	return games.All()
}

func (s *gameService) GetGame(ctx context.Context, id models.GameID) (models.GameMeta, error) {
	meta, ok := games.Lookup(id)
	if !ok {
		logger.FromContext(ctx).Debug("unknown game: id=%s", id)
		return models.GameMeta{}, errors.NewNotFoundError("game", id)
	}
	return meta, nil
}

// GetDifficulty returns the stored level, or the game's initial level when
// the profile has not finished a run of it yet.
func (s *gameService) GetDifficulty(ctx context.Context, profileID int64, id models.GameID) (models.DifficultyState, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting difficulty: profile_id=%d, game_id=%s", profileID, id)

	meta, err := s.GetGame(ctx, id)
	if err != nil {
		return models.DifficultyState{}, err
	}

	state, err := s.difficultyRepo.Get(ctx, profileID, id)
	if err != nil {
		log.Error("failed to load difficulty: %v", err)
		return models.DifficultyState{}, errors.NewInternalError(err)
	}
	if state == nil {
		return models.DifficultyState{
			ProfileID: profileID,
			GameID:    id,
			Current:   meta.InitialDifficulty,
			History:   []models.Difficulty{meta.InitialDifficulty},
		}, nil
	}
	return *state, nil
}
