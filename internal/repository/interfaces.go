package repository

import (
	"context"
	"time"

	"github.com/vytor/trainerdesk/internal/models"
)

// TrainerRepository handles trainer profile data access
type TrainerRepository interface {
	Get(ctx context.Context, id string) (*models.Trainer, error)
	Upsert(ctx context.Context, trainer models.Trainer) error
}

// ClientRepository handles client data access
type ClientRepository interface {
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Insert(ctx context.Context, client models.Client) (string, error)
}

// TemplateRepository handles metric template data access
type TemplateRepository interface {
	// FirstByTrainer returns the trainer's template, or nil when none exists.
	FirstByTrainer(ctx context.Context, trainerID string) (*models.MetricTemplate, error)
	Insert(ctx context.Context, template models.MetricTemplate) (string, error)
	Update(ctx context.Context, template models.MetricTemplate) error
}

// ProgressRepository handles progress record data access
type ProgressRepository interface {
	// ListByClient returns records ordered by date ascending.
	ListByClient(ctx context.Context, clientID string) ([]models.ProgressRecord, error)
	// FindByClientAndDate returns the record for that day, or nil.
	FindByClientAndDate(ctx context.Context, clientID string, date time.Time) (*models.ProgressRecord, error)
	Insert(ctx context.Context, record models.ProgressRecord) (string, error)
	// Merge overlays record's fields on the stored record with the same id.
	Merge(ctx context.Context, record models.ProgressRecord) error
}

// ScheduleRepository handles appointment data access
type ScheduleRepository interface {
	// ListBetween returns appointments in [from, to] ordered by date then time.
	ListBetween(ctx context.Context, trainerID string, from, to time.Time) ([]models.Appointment, error)
	Insert(ctx context.Context, appointment models.Appointment) (string, error)
}

// FolderRepository handles training folder data access
type FolderRepository interface {
	ListByTrainer(ctx context.Context, trainerID string) ([]models.TrainingFolder, error)
	Get(ctx context.Context, id string) (*models.TrainingFolder, error)
	Insert(ctx context.Context, folder models.TrainingFolder) (string, error)
}

// VideoRepository handles training video data access
type VideoRepository interface {
	ListByFolder(ctx context.Context, trainerID, folderID string) ([]models.Video, error)
	Insert(ctx context.Context, video models.Video) (string, error)
}
