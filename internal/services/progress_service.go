package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/trainerdesk/internal/calendar"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/metrics"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/progress"
	"github.com/vytor/trainerdesk/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ProgressService handles client progress records and their statistics
type ProgressService interface {
	Records(ctx context.Context, trainerID, clientID string) ([]models.ProgressRecord, error)
	ValuesFor(ctx context.Context, trainerID, clientID string, date time.Time) (*models.RecordValues, error)
	EnterValues(ctx context.Context, trainerID, clientID string, date time.Time, inputs map[string]string) (*models.UpsertResult, error)
	Statistics(ctx context.Context, trainerID, clientID string) (*models.ClientStatistics, error)
}

type progressService struct {
	clientRepo   repository.ClientRepository
	templateRepo repository.TemplateRepository
	progressRepo repository.ProgressRepository
	builder      *progress.Builder
	loc          *time.Location
	metrics      *metrics.Manager

	// upsertMu serializes the find-then-write in EnterValues so two
	// submissions for the same day cannot both insert.
	upsertMu sync.Mutex
}

// NewProgressService creates a new ProgressService. Record dates are
// normalized to the start of the day in builder's location.
func NewProgressService(
	clientRepo repository.ClientRepository,
	templateRepo repository.TemplateRepository,
	progressRepo repository.ProgressRepository,
	builder *progress.Builder,
	m *metrics.Manager,
) ProgressService {
	if builder == nil {
		builder = progress.NewBuilder("", nil)
	}
	return &progressService{
		clientRepo:   clientRepo,
		templateRepo: templateRepo,
		progressRepo: progressRepo,
		builder:      builder,
		loc:          builder.Location(),
		metrics:      m,
	}
}

func (s *progressService) Records(ctx context.Context, trainerID, clientID string) ([]models.ProgressRecord, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	if _, err := ownedClient(ctx, s.clientRepo, trainerID, clientID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("listing records: client_id=%s", clientID)

	records, err := s.progressRepo.ListByClient(ctx, clientID)
	if err != nil {
		log.Error("failed to list records: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadRecords", err)
	}
	return records, nil
}

// ValuesFor returns the entry form for one day: the stored values when a
// record exists, otherwise a blank input per template row.
func (s *progressService) ValuesFor(ctx context.Context, trainerID, clientID string, date time.Time) (*models.RecordValues, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	if _, err := ownedClient(ctx, s.clientRepo, trainerID, clientID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	day := calendar.StartOfDay(date, s.loc)

	template, err := s.templateRepo.FirstByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to get template: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTemplate", err)
	}
	existing, err := s.progressRepo.FindByClientAndDate(ctx, clientID, day)
	if err != nil {
		log.Error("failed to find record: %v", err)
		return nil, errors.NewRemoteFetchError("errorFetchingExistingRecord", err)
	}

	out := &models.RecordValues{ClientID: clientID, Date: day, Inputs: map[string]string{}}
	if template != nil {
		for _, row := range template.Rows {
			out.Inputs[row.ID] = ""
		}
	}
	if existing != nil {
		out.RecordID = existing.ID
		for id, v := range existing.Values {
			out.Inputs[id] = progress.FormatValue(v)
		}
	}
	return out, nil
}

// EnterValues validates inputs against the trainer's template and upserts
// the record keyed by (client, day). Submitting the same values twice leaves
// one record.
func (s *progressService) EnterValues(ctx context.Context, trainerID, clientID string, date time.Time, inputs map[string]string) (*models.UpsertResult, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	if _, err := ownedClient(ctx, s.clientRepo, trainerID, clientID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	day := calendar.StartOfDay(date, s.loc)

	template, err := s.templateRepo.FirstByTrainer(ctx, trainerID)
	if err != nil {
		log.Error("failed to get template: %v", err)
		return nil, errors.NewRemoteFetchError("failedToLoadTemplate", err)
	}
	if template == nil || len(template.Rows) == 0 {
		return nil, errors.NewBadRequestError("no metric template").WithKey("noTemplateData")
	}

	values, fieldErrs := progress.ValidateValues(*template, inputs)
	if fieldErrs != nil {
		log.Debug("rejected values: client_id=%s failing=%d", clientID, len(fieldErrs))
		return nil, errors.NewFieldsError(fieldErrs)
	}

	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()

	existing, err := s.progressRepo.FindByClientAndDate(ctx, clientID, day)
	if err != nil {
		log.Error("failed to find record: %v", err)
		return nil, errors.NewRemoteFetchError("errorFetchingExistingRecord", err)
	}

	if existing != nil {
		merged := make(map[string]float64, len(existing.Values)+len(values))
		for id, v := range existing.Values {
			merged[id] = v
		}
		for id, v := range values {
			merged[id] = v
		}
		rec := models.ProgressRecord{ID: existing.ID, ClientID: clientID, Date: day, Values: merged}
		if err := s.progressRepo.Merge(ctx, rec); err != nil {
			log.Error("failed to update record: %v", err)
			return nil, errors.NewInternalError(err).WithKey("failedToSaveValues")
		}
		s.metrics.ProgressUpserted(false)
		log.Info("record updated: id=%s", existing.ID)
		return &models.UpsertResult{RecordID: existing.ID, Created: false}, nil
	}

	id, err := s.progressRepo.Insert(ctx, models.ProgressRecord{ClientID: clientID, Date: day, Values: values})
	if err != nil {
		log.Error("failed to insert record: %v", err)
		return nil, errors.NewInternalError(err).WithKey("failedToSaveValues")
	}
	s.metrics.ProgressUpserted(true)
	log.Info("record created: id=%s", id)
	return &models.UpsertResult{RecordID: id, Created: true}, nil
}

// Statistics loads the template and the client's records concurrently and
// builds one series per metric. Either fetch failing fails the whole view.
func (s *progressService) Statistics(ctx context.Context, trainerID, clientID string) (*models.ClientStatistics, error) {
	if err := requireTrainer(trainerID); err != nil {
		return nil, err
	}
	if _, err := ownedClient(ctx, s.clientRepo, trainerID, clientID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("building statistics: client_id=%s", clientID)

	var (
		template *models.MetricTemplate
		records  []models.ProgressRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.templateRepo.FirstByTrainer(gctx, trainerID)
		if err != nil {
			return errors.NewRemoteFetchError("failedToLoadTemplate", err)
		}
		template = t
		return nil
	})
	g.Go(func() error {
		r, err := s.progressRepo.ListByClient(gctx, clientID)
		if err != nil {
			return errors.NewRemoteFetchError("failedToLoadRecords", err)
		}
		records = r
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load statistics: %v", err)
		return nil, err
	}

	stats := &models.ClientStatistics{ClientID: clientID, Series: []models.SeriesResult{}}
	switch {
	case template == nil:
		stats.State = models.StatisticsNoTemplate
		return stats, nil
	case len(records) == 0:
		stats.State = models.StatisticsNoRecords
	default:
		stats.State = models.StatisticsReady
	}

	stats.Series = s.builder.Build(*template, records)
	s.metrics.SeriesBuilt(stats.Series)
	log.Debug("statistics built: metrics=%d chartable=%d", len(stats.Series), progress.Chartable(stats.Series))
	return stats, nil
}
