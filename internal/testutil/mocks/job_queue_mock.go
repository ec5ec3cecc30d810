package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/intuition/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueRunCompleted(run models.RunSummary) error {
	args := m.Called(run)
	return args.Error(0)
}
