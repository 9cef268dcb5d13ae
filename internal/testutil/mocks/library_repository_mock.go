package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/trainerdesk/internal/models"
)

// MockFolderRepository is a mock implementation of repository.FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.TrainingFolder, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainingFolder), args.Error(1)
}

func (m *MockFolderRepository) Get(ctx context.Context, id string) (*models.TrainingFolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainingFolder), args.Error(1)
}

func (m *MockFolderRepository) Insert(ctx context.Context, folder models.TrainingFolder) (string, error) {
	args := m.Called(ctx, folder)
	return args.String(0), args.Error(1)
}

// MockVideoRepository is a mock implementation of repository.VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) ListByFolder(ctx context.Context, trainerID, folderID string) ([]models.Video, error) {
	args := m.Called(ctx, trainerID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoRepository) Insert(ctx context.Context, video models.Video) (string, error) {
	args := m.Called(ctx, video)
	return args.String(0), args.Error(1)
}
