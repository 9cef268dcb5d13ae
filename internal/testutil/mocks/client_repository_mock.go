package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockClientRepository is a mock implementation of repository.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.Client, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *MockClientRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) Insert(ctx context.Context, client models.Client) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}
