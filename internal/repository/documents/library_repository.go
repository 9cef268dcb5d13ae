package documents

import (
	"context"
	"errors"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type folderDoc struct {
	TrainerID string             `json:"trainerId"`
	Name      string             `json:"name"`
	CreatedAt docstore.Timestamp `json:"createdAt"`
}

func (d folderDoc) model(id string) models.TrainingFolder {
	return models.TrainingFolder{ID: id, TrainerID: d.TrainerID, Name: d.Name, CreatedAt: d.CreatedAt.Time()}
}

type videoDoc struct {
	TrainerID string             `json:"trainerId"`
	FolderID  string             `json:"folderId"`
	Name      string             `json:"name"`
	URL       string             `json:"url"`
	CreatedAt docstore.Timestamp `json:"createdAt"`
}

type folderRepository struct {
	store docstore.Store
}

// NewFolderRepository creates a FolderRepository over the trainingFolders collection.
func NewFolderRepository(store docstore.Store) repository.FolderRepository {
	return &folderRepository{store: store}
}

func (r *folderRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.TrainingFolder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("listing folders: trainer_id=%s", trainerID)

	docs, err := r.store.Query(ctx, docstore.TrainingFolders, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("trainerId", docstore.OpEq, trainerID)},
		OrderBy: []docstore.Order{docstore.Asc("name")},
	})
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, err
	}

	folders := make([]models.TrainingFolder, 0, len(docs))
	err = decodeAll(docs, func(id string, d folderDoc) error {
		folders = append(folders, d.model(id))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) Get(ctx context.Context, id string) (*models.TrainingFolder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("getting folder: id=%s", id)

	doc, err := r.store.Get(ctx, docstore.TrainingFolders, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get folder: %v", err)
		return nil, err
	}

	var d folderDoc
	if err := doc.Decode(&d); err != nil {
		return nil, err
	}
	f := d.model(doc.ID)
	return &f, nil
}

func (r *folderRepository) Insert(ctx context.Context, folder models.TrainingFolder) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("inserting folder: trainer_id=%s name=%s", folder.TrainerID, folder.Name)

	id, err := r.store.Add(ctx, docstore.TrainingFolders, folderDoc{
		TrainerID: folder.TrainerID,
		Name:      folder.Name,
		CreatedAt: docstore.FromTime(folder.CreatedAt),
	})
	if err != nil {
		log.Error("failed to insert folder: %v", err)
		return "", err
	}
	return id, nil
}

type videoRepository struct {
	store docstore.Store
}

// NewVideoRepository creates a VideoRepository over the videos collection.
func NewVideoRepository(store docstore.Store) repository.VideoRepository {
	return &videoRepository{store: store}
}

func (r *videoRepository) ListByFolder(ctx context.Context, trainerID, folderID string) ([]models.Video, error) {
	log := logger.FromContext(ctx).WithPrefix("video_repo")
	log.Debug("listing videos: trainer_id=%s folder_id=%s", trainerID, folderID)

	docs, err := r.store.Query(ctx, docstore.Videos, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("trainerId", docstore.OpEq, trainerID),
			docstore.Where("folderId", docstore.OpEq, folderID),
		},
		OrderBy: []docstore.Order{docstore.Asc("name")},
	})
	if err != nil {
		log.Error("failed to list videos: %v", err)
		return nil, err
	}

	videos := make([]models.Video, 0, len(docs))
	err = decodeAll(docs, func(id string, d videoDoc) error {
		videos = append(videos, models.Video{
			ID:        id,
			TrainerID: d.TrainerID,
			FolderID:  d.FolderID,
			Name:      d.Name,
			URL:       d.URL,
			CreatedAt: d.CreatedAt.Time(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) Insert(ctx context.Context, v models.Video) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("video_repo")
	log.Debug("inserting video: folder_id=%s name=%s", v.FolderID, v.Name)

	id, err := r.store.Add(ctx, docstore.Videos, videoDoc{
		TrainerID: v.TrainerID,
		FolderID:  v.FolderID,
		Name:      v.Name,
		URL:       v.URL,
		CreatedAt: docstore.FromTime(v.CreatedAt),
	})
	if err != nil {
		log.Error("failed to insert video: %v", err)
		return "", err
	}
	return id, nil
}
