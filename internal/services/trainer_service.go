package services

import (
	"context"
	"strings"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

// TrainerService handles the signed-in trainer's own profile
type TrainerService interface {
	Profile(ctx context.Context, trainerID string) (*models.Trainer, error)
	UpdateUsername(ctx context.Context, trainerID, username string) (*models.Trainer, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(trainerRepo repository.TrainerRepository) TrainerService {
	return &trainerService{trainerRepo: trainerRepo}
}

// Profile returns the trainer's profile. A trainer who never saved a
// username still gets a profile carrying just the id.
func (s *trainerService) Profile(ctx context.Context, trainerID string) (*models.Trainer, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("getting profile: trainer_id=%s", trainerID)

	trainer, err := s.trainerRepo.Get(ctx, trainerID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadProfile", err)
	}
	if trainer == nil {
		return &models.Trainer{ID: trainerID}, nil
	}
	return trainer, nil
}

func (s *trainerService) UpdateUsername(ctx context.Context, trainerID, username string) (*models.Trainer, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("updating username: trainer_id=%s", trainerID)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", errors.ReasonRequiredField)
	}

	trainer := models.Trainer{ID: trainerID, Username: username}
	if err := s.trainerRepo.Upsert(ctx, trainer); err != nil {
		log.Error("failed to update username: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &trainer, nil
}
