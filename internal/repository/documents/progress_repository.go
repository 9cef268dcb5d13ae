package documents

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository"
)

type progressDoc struct {
	ClientID string             `json:"clientId"`
	Date     docstore.Timestamp `json:"date"`
	Values   map[string]float64 `json:"values"`
}

func (d progressDoc) model(id string) models.ProgressRecord {
	values := d.Values
	if values == nil {
		values = map[string]float64{}
	}
	return models.ProgressRecord{ID: id, ClientID: d.ClientID, Date: d.Date.Time(), Values: values}
}

func newProgressDoc(rec models.ProgressRecord) progressDoc {
	return progressDoc{ClientID: rec.ClientID, Date: docstore.FromTime(rec.Date), Values: rec.Values}
}

type progressRepository struct {
	store docstore.Store
}

// NewProgressRepository creates a ProgressRepository over the progressRecords collection.
func NewProgressRepository(store docstore.Store) repository.ProgressRepository {
	return &progressRepository{store: store}
}

func (r *progressRepository) ListByClient(ctx context.Context, clientID string) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress records: client_id=%s", clientID)

	docs, err := r.store.Query(ctx, docstore.ProgressRecords, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("clientId", docstore.OpEq, clientID)},
		OrderBy: []docstore.Order{docstore.Asc("date")},
	})
	if err != nil {
		log.Error("failed to list progress records: %v", err)
		return nil, err
	}

	records := make([]models.ProgressRecord, 0, len(docs))
	err = decodeAll(docs, func(id string, d progressDoc) error {
		records = append(records, d.model(id))
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("found %d progress records", len(records))
	return records, nil
}

func (r *progressRepository) FindByClientAndDate(ctx context.Context, clientID string, date time.Time) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("finding progress record: client_id=%s date=%s", clientID, date.Format(time.RFC3339))

	docs, err := r.store.Query(ctx, docstore.ProgressRecords, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("clientId", docstore.OpEq, clientID),
			docstore.Where("date", docstore.OpEq, docstore.FromTime(date)),
		},
		Limit: 1,
	})
	if err != nil {
		log.Error("failed to find progress record: %v", err)
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var d progressDoc
	if err := docs[0].Decode(&d); err != nil {
		return nil, err
	}
	rec := d.model(docs[0].ID)
	return &rec, nil
}

func (r *progressRepository) Insert(ctx context.Context, record models.ProgressRecord) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting progress record: client_id=%s", record.ClientID)

	id, err := r.store.Add(ctx, docstore.ProgressRecords, newProgressDoc(record))
	if err != nil {
		log.Error("failed to insert progress record: %v", err)
		return "", err
	}
	return id, nil
}

func (r *progressRepository) Merge(ctx context.Context, record models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("merging progress record: id=%s", record.ID)

	err := r.store.Update(ctx, docstore.ProgressRecords, record.ID, newProgressDoc(record), true)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		log.Error("failed to merge progress record: %v", err)
	}
	return err
}
