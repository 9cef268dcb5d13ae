package documents

import (
	"context"
	"errors"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type trainerDoc struct {
	Username string `json:"username"`
}

type trainerRepository struct {
	store docstore.Store
}

// NewTrainerRepository creates a TrainerRepository over the users collection.
// Trainer documents are keyed by the identity provider's user id.
func NewTrainerRepository(store docstore.Store) repository.TrainerRepository {
	return &trainerRepository{store: store}
}

func (r *trainerRepository) Get(ctx context.Context, id string) (*models.Trainer, error) {
	log := logger.FromContext(ctx).WithPrefix("trainer_repo")
	log.Debug("getting trainer: id=%s", id)

	doc, err := r.store.Get(ctx, docstore.Users, id)
	if errors.Is(err, docstore.ErrNotFound) {
		log.Debug("trainer not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get trainer: %v", err)
		return nil, err
	}

	var d trainerDoc
	if err := doc.Decode(&d); err != nil {
		return nil, err
	}
	return &models.Trainer{ID: doc.ID, Username: d.Username}, nil
}

func (r *trainerRepository) Upsert(ctx context.Context, trainer models.Trainer) error {
	log := logger.FromContext(ctx).WithPrefix("trainer_repo")
	log.Debug("upserting trainer: id=%s", trainer.ID)

	if err := r.store.Set(ctx, docstore.Users, trainer.ID, trainerDoc{Username: trainer.Username}, true); err != nil {
		log.Error("failed to upsert trainer: %v", err)
		return err
	}
	return nil
}
