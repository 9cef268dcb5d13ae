package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/trainerdesk/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// SQLiteStore keeps every collection in the documents table created by the
// db migrations.
type SQLiteStore struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the clock used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// WithIDGenerator overrides uuid document ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *SQLiteStore) { s.newID = gen }
}

func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: db, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func jsonPath(field string) string {
	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}

func (s *SQLiteStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	log := logger.FromContext(ctx).WithPrefix("docstore")
	log.Debug("querying %s: filters=%d order=%d limit=%d", collection, len(q.Filters), len(q.OrderBy), q.Limit)

	if collection == "" {
		return nil, ErrNoCollection
	}

	query := sqlBuilder.Select("id", "data", "created_at", "updated_at").
		From("documents").
		Where(squirrel.Eq{"collection": collection})

	for _, f := range q.Filters {
		if err := validateField(f.Field); err != nil {
			return nil, err
		}
		op, err := f.Op.sql()
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.Expr(jsonPath(f.Field)+" "+op+" ?", f.Value))
	}

	for _, o := range q.OrderBy {
		if err := validateField(o.Field); err != nil {
			return nil, err
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		query = query.OrderBy(jsonPath(o.Field) + " " + dir)
	}
	query = query.OrderBy("rowid ASC")

	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query %s: %v", collection, err)
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d    Document
			data string
		)
		if err := rows.Scan(&d.ID, &data, &d.CreatedAt, &d.UpdatedAt); err != nil {
			log.Error("failed to scan document row: %v", err)
			return nil, err
		}
		d.Data = []byte(data)
		docs = append(docs, d)
	}
	log.Debug("found %d documents in %s", len(docs), collection)
	return docs, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	log := logger.FromContext(ctx).WithPrefix("docstore")
	log.Debug("getting %s/%s", collection, id)

	d, err := getDoc(ctx, s.db, collection, id)
	if errors.Is(err, ErrNotFound) {
		log.Debug("document not found: %s/%s", collection, id)
	} else if err != nil {
		log.Error("failed to get %s/%s: %v", collection, id, err)
	}
	return d, err
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDoc(ctx context.Context, q queryRower, collection, id string) (Document, error) {
	if collection == "" {
		return Document{}, ErrNoCollection
	}
	query, args, err := sqlBuilder.Select("id", "data", "created_at", "updated_at").
		From("documents").
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return Document{}, err
	}

	var (
		d    Document
		data string
	)
	err = q.QueryRowContext(ctx, query, args...).Scan(&d.ID, &data, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	d.Data = []byte(data)
	return d, nil
}

func (s *SQLiteStore) Add(ctx context.Context, collection string, fields any) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("docstore")
	if collection == "" {
		return "", ErrNoCollection
	}

	data, err := encodeObject(fields)
	if err != nil {
		return "", err
	}

	id := s.newID()
	now := s.now().UTC()
	query, args, err := sqlBuilder.Insert("documents").
		Columns("collection", "id", "data", "created_at", "updated_at").
		Values(collection, id, string(data), now, now).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to add document to %s: %v", collection, err)
		return "", err
	}
	log.Debug("document added: %s/%s", collection, id)
	return id, nil
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields any, merge bool) error {
	return s.write(ctx, collection, id, fields, merge, false)
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, fields any, merge bool) error {
	return s.write(ctx, collection, id, fields, merge, true)
}

func (s *SQLiteStore) write(ctx context.Context, collection, id string, fields any, merge, create bool) error {
	log := logger.FromContext(ctx).WithPrefix("docstore")
	log.Debug("writing %s/%s: merge=%t create=%t", collection, id, merge, create)

	data, err := encodeObject(fields)
	if err != nil {
		return err
	}

	return tx(ctx, s.db, func(tx *sql.Tx) error {
		now := s.now().UTC()
		existing, err := getDoc(ctx, tx, collection, id)
		if errors.Is(err, ErrNotFound) {
			if !create {
				log.Debug("update of missing document %s/%s", collection, id)
				return err
			}
			query, args, err := sqlBuilder.Insert("documents").
				Columns("collection", "id", "data", "created_at", "updated_at").
				Values(collection, id, string(data), now, now).
				ToSql()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, query, args...)
			return err
		}
		if err != nil {
			return err
		}

		if merge {
			data, err = mergeObjects(existing.Data, data)
			if err != nil {
				return err
			}
		}

		query, args, err := sqlBuilder.Update("documents").
			Set("data", string(data)).
			Set("updated_at", now).
			Where(squirrel.Eq{"collection": collection, "id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to update %s/%s: %v", collection, id, err)
			return err
		}
		return nil
	})
}
