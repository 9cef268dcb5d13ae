package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListByClient(ctx context.Context, clientID string) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) FindByClientAndDate(ctx context.Context, clientID string, date time.Time) (*models.ProgressRecord, error) {
	args := m.Called(ctx, clientID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Insert(ctx context.Context, record models.ProgressRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *MockProgressRepository) Merge(ctx context.Context, record models.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
