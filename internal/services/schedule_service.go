package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vytor/trainerdesk/internal/calendar"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ScheduleService handles the trainer's day schedule
type ScheduleService interface {
	DaySchedule(ctx context.Context, trainerID string, day time.Time) ([]models.Appointment, error)
	AddAppointment(ctx context.Context, trainerID string, in models.NewAppointment) (*models.Appointment, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	clientRepo   repository.ClientRepository
	loc          *time.Location
}

// NewScheduleService creates a new ScheduleService. Days are computed in loc.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, clientRepo repository.ClientRepository, loc *time.Location) ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleService{scheduleRepo: scheduleRepo, clientRepo: clientRepo, loc: loc}
}

// DaySchedule lists the appointments between the start and the end of day,
// ordered by date then time, each tagged with its client's name.
func (s *scheduleService) DaySchedule(ctx context.Context, trainerID string, day time.Time) ([]models.Appointment, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	from, to := calendar.StartOfDay(day, s.loc), calendar.EndOfDay(day, s.loc)
	log.Debug("loading schedule: trainer_id=%s day=%s", trainerID, from.Format(calendar.DayLayout))

	var (
		appointments []models.Appointment
		clients      []models.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.scheduleRepo.ListBetween(gctx, trainerID, from, to)
		if err != nil {
			return errors.NewRemoteFetchError("failedToLoadSchedule", err)
		}
		appointments = a
		return nil
	})
	g.Go(func() error {
		c, err := s.clientRepo.ListByTrainer(gctx, trainerID)
		if err != nil {
			return errors.NewRemoteFetchError("failedToLoadClients", err)
		}
		clients = c
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load schedule: %v", err)
		return nil, err
	}

	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}
	for i := range appointments {
		appointments[i].ClientName = names[appointments[i].ClientID]
	}
	return appointments, nil
}

func (s *scheduleService) AddAppointment(ctx context.Context, trainerID string, in models.NewAppointment) (*models.Appointment, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	fieldErrs := errors.FieldErrors{}
	if strings.TrimSpace(in.ClientID) == "" {
		fieldErrs["client_id"] = errors.ReasonRequiredField
	}
	day, err := calendar.ParseDay(in.Date, s.loc)
	if strings.TrimSpace(in.Date) == "" {
		fieldErrs["date"] = errors.ReasonRequiredField
	} else if err != nil {
		fieldErrs["date"] = errors.ReasonInvalidTime
	}
	h, m, err := calendar.ParseClock(in.Time)
	if strings.TrimSpace(in.Time) == "" {
		fieldErrs["time"] = errors.ReasonRequiredField
	} else if err != nil {
		fieldErrs["time"] = errors.ReasonInvalidTime
	}
	if len(fieldErrs) > 0 {
		return nil, errors.NewFieldsError(fieldErrs)
	}

	client, err := ownedClient(ctx, s.clientRepo, trainerID, strings.TrimSpace(in.ClientID))
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		TrainerID:   trainerID,
		ClientID:    client.ID,
		Date:        calendar.At(day, h, m, s.loc),
		Time:        fmt.Sprintf("%02d:%02d", h, m),
		Description: strings.TrimSpace(in.Description),
	}
	id, err := s.scheduleRepo.Insert(ctx, appointment)
	if err != nil {
		log.Error("failed to add appointment: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToSaveAppointment")
	}
	appointment.ID = id
	appointment.ClientName = client.FullName()
	log.Info("appointment added: id=%s client_id=%s", id, client.ID)
	return &appointment, nil
}
