package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ListBetween(ctx context.Context, trainerID string, from, to time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, trainerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockScheduleRepository) Insert(ctx context.Context, appointment models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}
