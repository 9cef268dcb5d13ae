package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockTemplateRepository is a mock implementation of repository.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FirstByTrainer(ctx context.Context, trainerID string) (*models.MetricTemplate, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Insert(ctx context.Context, template models.MetricTemplate) (string, error) {
	args := m.Called(ctx, template)
	return args.String(0), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, template models.MetricTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}
