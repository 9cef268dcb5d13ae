package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

// TemplateService handles the trainer's metric template
type TemplateService interface {
	Get(ctx context.Context, trainerID string) (*models.MetricTemplate, error)
	Save(ctx context.Context, trainerID string, rows []models.MetricRow) (*models.MetricTemplate, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// Get returns the trainer's template. A trainer without one gets an empty
// template that has no id yet.
func (s *templateService) Get(ctx context.Context, trainerID string) (*models.MetricTemplate, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("getting template: trainer_id=%s", trainerID)

	template, err := s.templateRepo.FirstByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to get template: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTemplate", err)
	}
	if template == nil {
		return &models.MetricTemplate{TrainerID: trainerID, Rows: []models.MetricRow{}}, nil
	}
	return template, nil
}

// Save replaces the template rows. Names are trimmed and required, blank ids
// are generated, and ids must be unique. The existing template is updated in
// place; otherwise a new one is inserted.
func (s *templateService) Save(ctx context.Context, trainerID string, rows []models.MetricRow) (*models.MetricTemplate, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	cleaned, fieldErrs := normalizeRows(rows)
	if len(fieldErrs) > 0 {
		return nil, errors.NewFieldsError(fieldErrs)
	}

	existing, err := s.templateRepo.FirstByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to get template: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTemplate", err)
	}

	template := models.MetricTemplate{TrainerID: trainerID, Rows: cleaned}
	if existing != nil {
		template.ID = existing.ID
		log.Debug("updating template: id=%s rows=%d", template.ID, len(cleaned))
		if err := s.templateRepo.Update(ctx, template); err != nil {
			log.Error("failed to update template: %v", err)
			return nil, errors.NewInternalError(err).WithKey("failedToSaveTemplate")
		}
		return &template, nil
	}

	log.Debug("creating template: rows=%d", len(cleaned))
	id, err := s.templateRepo.Insert(ctx, template)
	if err != nil {
		log.Error("failed to create template: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToSaveTemplate")
	}
	template.ID = id
	return &template, nil
}

func normalizeRows(rows []models.MetricRow) ([]models.MetricRow, errors.FieldErrors) {
	cleaned := make([]models.MetricRow, 0, len(rows))
	fieldErrs := errors.FieldErrors{}
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		row.ID = strings.TrimSpace(row.ID)
		row.Name = strings.TrimSpace(row.Name)
		if row.Name == "" {
			fieldErrs[fmt.Sprintf("rows[%d].name", i)] = errors.ReasonRequiredField
		}
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if seen[row.ID] {
			fieldErrs[fmt.Sprintf("rows[%d].id", i)] = errors.ReasonDuplicate
		}
		seen[row.ID] = true
		cleaned = append(cleaned, row)
	}
	return cleaned, fieldErrs
}
