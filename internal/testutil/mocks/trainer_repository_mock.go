package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockTrainerRepository is a mock implementation of repository.TrainerRepository
type MockTrainerRepository struct {
	mock.Mock
}

func (m *MockTrainerRepository) Get(ctx context.Context, id string) (*models.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trainer), args.Error(1)
}

func (m *MockTrainerRepository) Upsert(ctx context.Context, trainer models.Trainer) error {
	args := m.Called(ctx, trainer)
	return args.Error(0)
}
