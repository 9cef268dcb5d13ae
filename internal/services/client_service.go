package services

import (
	"context"
	"strings"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

// ClientService handles a trainer's client list
type ClientService interface {
	List(ctx context.Context, trainerID string) ([]models.Client, error)
	Create(ctx context.Context, trainerID string, in models.NewClient) (*models.Client, error)
	Get(ctx context.Context, trainerID, clientID string) (*models.Client, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) List(ctx context.Context, trainerID string) ([]models.Client, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("listing clients: trainer_id=%s", trainerID)

	clients, err := s.clientRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to list clients: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadClients", err)
	}
	return clients, nil
}

func (s *clientService) Create(ctx context.Context, trainerID string, in models.NewClient) (*models.Client, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	client := models.Client{
		TrainerID:   trainerID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Description: strings.TrimSpace(in.Description),
	}

	fieldErrs := errors.FieldErrors{}
	if client.FirstName == "" {
		fieldErrs["first_name"] = errors.ReasonRequiredField
	}
	if client.LastName == "" {
		fieldErrs["last_name"] = errors.ReasonRequiredField
	}
	for _, sn := range in.SocialNetworks {
		sn.Name = strings.TrimSpace(sn.Name)
		sn.URL = strings.TrimSpace(sn.URL)
		if sn.Name == "" && sn.URL == "" {
			continue
		}
		if sn.URL == "" {
			fieldErrs["social_networks"] = errors.ReasonRequiredField
			continue
		}
		client.SocialNetworks = append(client.SocialNetworks, sn)
	}
	if len(fieldErrs) > 0 {
		return nil, errors.NewFieldsError(fieldErrs)
	}

	log.Debug("creating client: trainer_id=%s", trainerID)
	id, err := s.clientRepo.Insert(ctx, client)
	if err != nil {
		log.Error("failed to create client: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToAddClient")
	}
	client.ID = id
	log.Info("client created: id=%s", id)
	return &client, nil
}

func (s *clientService) Get(ctx context.Context, trainerID, clientID string) (*models.Client, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("getting client: id=%s", clientID)
	return ownedClient(ctx, s.clientRepo, trainerID, clientID)
}
