package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

// LibraryService handles training folders and the videos filed in them
type LibraryService interface {
	Folders(ctx context.Context, trainerID string) ([]models.TrainingFolder, error)
	CreateFolder(ctx context.Context, trainerID, name string) (*models.TrainingFolder, error)
	Videos(ctx context.Context, trainerID, folderID string) ([]models.Video, error)
	AddVideo(ctx context.Context, trainerID, folderID, name, url string) (*models.Video, error)
}

type libraryService struct {
	folderRepo repository.FolderRepository
	videoRepo  repository.VideoRepository
	now        func() time.Time
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(folderRepo repository.FolderRepository, videoRepo repository.VideoRepository) LibraryService {
	return &libraryService{folderRepo: folderRepo, videoRepo: videoRepo, now: time.Now}
}

func (s *libraryService) Folders(ctx context.Context, trainerID string) ([]models.TrainingFolder, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("listing folders: trainer_id=%s", trainerID)

	folders, err := s.folderRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTrainingFolders", err)
	}
	return folders, nil
}

func (s *libraryService) CreateFolder(ctx context.Context, trainerID, name string) (*models.TrainingFolder, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", errors.ReasonRequiredField)
	}

	folder := models.TrainingFolder{TrainerID: trainerID, Name: name, CreatedAt: s.now().UTC()}
	id, err := s.folderRepo.Insert(ctx, folder)
	if err != nil {
		log.Error("failed to create folder: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToCreateFolder")
	}
	folder.ID = id
	log.Info("folder created: id=%s", id)
	return &folder, nil
}

func (s *libraryService) ownedFolder(ctx context.Context, trainerID, folderID string) (*models.TrainingFolder, error) {
	folder, err := s.folderRepo.Get(ctx, folderID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get folder: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTrainingFolders", err)
	}
	if folder == nil || folder.TrainerID != trainerID {
		return nil, errors.NewNotFoundError("folder", folderID)
	}
	return folder, nil
}

func (s *libraryService) Videos(ctx context.Context, trainerID, folderID string) ([]models.Video, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	if _, err := s.ownedFolder(ctx, trainerID, folderID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("listing videos: folder_id=%s", folderID)

	videos, err := s.videoRepo.ListByFolder(ctx, trainerID, folderID)
	if err != nil {
		log.Error("failed to list videos: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadFolderContent", err)
	}
	return videos, nil
}

// AddVideo files a video reference under folderID. The media itself is
// stored elsewhere; only its name and url are recorded here.
func (s *libraryService) AddVideo(ctx context.Context, trainerID, folderID, name, url string) (*models.Video, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	fieldErrs := errors.FieldErrors{}
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" {
		fieldErrs["name"] = errors.ReasonRequiredField
	}
	if url == "" {
		fieldErrs["url"] = errors.ReasonRequiredField
	}
	if len(fieldErrs) > 0 {
		return nil, errors.NewFieldsError(fieldErrs)
	}

	if _, err := s.ownedFolder(ctx, trainerID, folderID); err != nil {
		return nil, err
	}

	video := models.Video{
		TrainerID: trainerID,
		FolderID:  folderID,
		Name:      name,
		URL:       url,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.videoRepo.Insert(ctx, video)
	if err != nil {
		log.Error("failed to add video: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToSaveVideo")
	}
	video.ID = id
	log.Info("video added: id=%s folder_id=%s", id, folderID)
	return &video, nil
}
