package documents

import (
	"context"
	"errors"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type templateDoc struct {
	TrainerID string             `json:"trainerId"`
	Rows      []models.MetricRow `json:"rows"`
}

type templateRepository struct {
	store docstore.Store
}

// NewTemplateRepository creates a TemplateRepository over the templates collection.
func NewTemplateRepository(store docstore.Store) repository.TemplateRepository {
	return &templateRepository{store: store}
}

func (r *templateRepository) FirstByTrainer(ctx context.Context, trainerID string) (*models.MetricTemplate, error) {
	log := logger.FromContext(ctx).WithPrefix("template_repo")
	log.Debug("getting template: trainer_id=%s", trainerID)

	docs, err := r.store.Query(ctx, docstore.Templates, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("trainerId", docstore.OpEq, trainerID)},
		Limit:   1,
	})
	if err != nil {
		log.Error("failed to query template: %v", err)
		return nil, err
	}
	if len(docs) == 0 {
		log.Debug("no template for trainer %s", trainerID)
		return nil, nil
	}

	var d templateDoc
	if err := docs[0].Decode(&d); err != nil {
		return nil, err
	}
	rows := d.Rows
	if rows == nil {
		rows = []models.MetricRow{}
	}
	return &models.MetricTemplate{ID: docs[0].ID, TrainerID: d.TrainerID, Rows: rows}, nil
}

func (r *templateRepository) Insert(ctx context.Context, template models.MetricTemplate) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("template_repo")
	log.Debug("inserting template: trainer_id=%s rows=%d", template.TrainerID, len(template.Rows))

	id, err := r.store.Add(ctx, docstore.Templates, templateDoc{TrainerID: template.TrainerID, Rows: template.Rows})
	if err != nil {
		log.Error("failed to insert template: %v", err)
		return "", err
	}
	return id, nil
}

func (r *templateRepository) Update(ctx context.Context, template models.MetricTemplate) error {
	log := logger.FromContext(ctx).WithPrefix("template_repo")
	log.Debug("updating template: id=%s rows=%d", template.ID, len(template.Rows))

	err := r.store.Update(ctx, docstore.Templates, template.ID, templateDoc{TrainerID: template.TrainerID, Rows: template.Rows}, true)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		log.Error("failed to update template: %v", err)
	}
	return err
}
