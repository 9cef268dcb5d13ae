// Package docstore is a small document database: named collections of JSON
// documents that can be filtered and ordered by top-level fields.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Collections used by the service.
const (
	Users           = "users"
	Clients         = "clients"
	Templates       = "templates"
	ProgressRecords = "progressRecords"
	Schedule        = "schedule"
	TrainingFolders = "trainingFolders"
	Videos          = "videos"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidField = errors.New("invalid field name")
	ErrInvalidOp    = errors.New("invalid filter operator")
	ErrNotAnObject  = errors.New("document fields must encode to a JSON object")
	ErrNoCollection = errors.New("collection name is required")
)

// Op is a filter comparison.
type Op string

const (
	OpEq  Op = "=="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

func (o Op) sql() (string, error) {
	switch o {
	case OpEq:
		return "=", nil
	case OpLt, OpLte, OpGt, OpGte:
		return string(o), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOp, string(o))
	}
}

type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// Query selects documents of one collection. Documents with equal sort keys
// come back in insertion order. Limit <= 0 means no limit.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d.Data, v)
}

// Store is the document database the repositories are written against.
type Store interface {
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Add stores fields under a generated id.
	Add(ctx context.Context, collection string, fields any) (string, error)
	// Update changes an existing document. With merge the top-level fields
	// are overlaid on the stored ones, otherwise the document is replaced.
	Update(ctx context.Context, collection, id string, fields any, merge bool) error
	// Set is Update that creates the document when id does not exist yet.
	Set(ctx context.Context, collection, id string, fields any, merge bool) error
}

var fieldRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateField(field string) error {
	if !fieldRe.MatchString(field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}
