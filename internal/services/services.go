// Package services implements the trainer-facing operations on top of the
// repositories. Every operation takes the trainer id explicitly; an empty id
// fails with NOT_AUTHENTICATED before any repository is touched.
package services

import (
	"context"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

func requireTrainer(trainerID string) error {
	if trainerID == "" {
		return errors.NewNotAuthenticatedError()
	}
	return nil
}

// ownedClient loads clientID and checks it belongs to trainerID. Clients of
// other trainers are reported as not found.
func ownedClient(ctx context.Context, repo repository.ClientRepository, trainerID, clientID string) (*models.Client, error) {
	if clientID == "" {
		return nil, errors.NewValidationError("client_id", errors.ReasonRequiredField)
	}
	client, err := repo.Get(ctx, clientID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get client: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadClient", err)
	}
	if client == nil || client.TrainerID != trainerID {
		return nil, errors.NewNotFoundError("client", clientID)
	}
	return client, nil
}
