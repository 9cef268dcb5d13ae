package documents

import (
	"context"
	"time"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type appointmentDoc struct {
	TrainerID   string             `json:"trainerId"`
	ClientID    string             `json:"clientId"`
	Date        docstore.Timestamp `json:"date"`
	Time        string             `json:"time"`
	Description string             `json:"description"`
}

type scheduleRepository struct {
	store docstore.Store
}

// NewScheduleRepository creates a ScheduleRepository over the schedule collection.
func NewScheduleRepository(store docstore.Store) repository.ScheduleRepository {
	return &scheduleRepository{store: store}
}

func (r *scheduleRepository) ListBetween(ctx context.Context, trainerID string, from, to time.Time) ([]models.Appointment, error) {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("listing appointments: trainer_id=%s from=%s to=%s", trainerID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	docs, err := r.store.Query(ctx, docstore.Schedule, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("trainerId", docstore.OpEq, trainerID),
			docstore.Where("date", docstore.OpGte, docstore.FromTime(from)),
			docstore.Where("date", docstore.OpLte, docstore.FromTime(to)),
		},
		OrderBy: []docstore.Order{docstore.Asc("date"), docstore.Asc("time")},
	})
	if err != nil {
		log.Error("failed to list appointments: %v", err)
		return nil, err
	}

	appointments := make([]models.Appointment, 0, len(docs))
	err = decodeAll(docs, func(id string, d appointmentDoc) error {
		appointments = append(appointments, models.Appointment{
			ID:          id,
			TrainerID:   d.TrainerID,
			ClientID:    d.ClientID,
			Date:        d.Date.Time(),
			Time:        d.Time,
			Description: d.Description,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("found %d appointments", len(appointments))
	return appointments, nil
}

func (r *scheduleRepository) Insert(ctx context.Context, a models.Appointment) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("schedule_repo")
	log.Debug("inserting appointment: trainer_id=%s client_id=%s", a.TrainerID, a.ClientID)

	id, err := r.store.Add(ctx, docstore.Schedule, appointmentDoc{
		TrainerID:   a.TrainerID,
		ClientID:    a.ClientID,
		Date:        docstore.FromTime(a.Date),
		Time:        a.Time,
		Description: a.Description,
	})
	if err != nil {
		log.Error("failed to insert appointment: %v", err)
		return "", err
	}
	return id, nil
}
