package documents

import (
	"context"
	"errors"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type clientDoc struct {
	TrainerID      string                 `json:"trainerId"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	Description    string                 `json:"description,omitempty"`
	SocialNetworks []models.SocialNetwork `json:"socialNetworks,omitempty"`
}

func (d clientDoc) model(id string) models.Client {
	return models.Client{
		ID:             id,
		TrainerID:      d.TrainerID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Description:    d.Description,
		SocialNetworks: d.SocialNetworks,
	}
}

type clientRepository struct {
	store docstore.Store
}

// NewClientRepository creates a ClientRepository over the clients collection.
func NewClientRepository(store docstore.Store) repository.ClientRepository {
	return &clientRepository{store: store}
}

func (r *clientRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.Client, error) {
	log := logger.FromContext(ctx).WithPrefix("client_repo")
	log.Debug("listing clients: trainer_id=%s", trainerID)

	docs, err := r.store.Query(ctx, docstore.Clients, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("trainerId", docstore.OpEq, trainerID)},
		OrderBy: []docstore.Order{docstore.Asc("lastName"), docstore.Asc("firstName")},
	})
	if err != nil {
		log.Error("failed to list clients: %v", err)
		return nil, err
	}

	clients := make([]models.Client, 0, len(docs))
	err = decodeAll(docs, func(id string, d clientDoc) error {
		clients = append(clients, d.model(id))
		return nil
	})
	if err != nil {
		log.Error("failed to decode clients: %v", err)
		return nil, err
	}
	log.Debug("found %d clients", len(clients))
	return clients, nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	log := logger.FromContext(ctx).WithPrefix("client_repo")
	log.Debug("getting client: id=%s", id)

	doc, err := r.store.Get(ctx, docstore.Clients, id)
	if errors.Is(err, docstore.ErrNotFound) {
		log.Debug("client not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get client: %v", err)
		return nil, err
	}

	var d clientDoc
	if err := doc.Decode(&d); err != nil {
		return nil, err
	}
	c := d.model(doc.ID)
	return &c, nil
}

func (r *clientRepository) Insert(ctx context.Context, client models.Client) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("client_repo")
	log.Debug("inserting client: trainer_id=%s", client.TrainerID)

	id, err := r.store.Add(ctx, docstore.Clients, clientDoc{
		TrainerID:      client.TrainerID,
		FirstName:      client.FirstName,
		LastName:       client.LastName,
		Description:    client.Description,
		SocialNetworks: client.SocialNetworks,
	})
	if err != nil {
		log.Error("failed to insert client: %v", err)
		return "", err
	}
	log.Debug("client inserted: id=%s", id)
	return id, nil
}
