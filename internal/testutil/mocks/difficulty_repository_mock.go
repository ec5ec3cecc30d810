package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/intuition/internal/models"
)

// MockDifficultyRepository is a mock implementation of repository.DifficultyRepository
type MockDifficultyRepository struct {
	mock.Mock
}

func (m *MockDifficultyRepository) Get(ctx context.Context, profileID int64, gameID models.GameID) (*models.DifficultyState, error) {
	args := m.Called(ctx, profileID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DifficultyState), args.Error(1)
}

func (m *MockDifficultyRepository) List(ctx context.Context, profileID int64) ([]models.DifficultyState, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DifficultyState), args.Error(1)
}

func (m *MockDifficultyRepository) Save(ctx context.Context, state models.DifficultyState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}
