package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/intuition/internal/models"
)

// MockProgressService is a mock implementation of services.ProgressService
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.RunSummary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.RunSummary), args.Int(1), args.Error(2)
}

func (m *MockProgressService) Snapshot(ctx context.Context, profileID int64) (models.ProgressSnapshot, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(models.ProgressSnapshot), args.Error(1)
}

func (m *MockProgressService) IntuitionIndex(ctx context.Context, profileID int64) (int, error) {
	args := m.Called(ctx, profileID)
	return args.Int(0), args.Error(1)
}
