package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound         = RepositoryError("not found")
	ErrStoreUnavailable = RepositoryError("document store unavailable")
	ErrInvalidField     = RepositoryError("invalid field")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Filter operators understood by every Store.
const (
	OpEqual         = "=="
	OpArrayContains = "array-contains"
)

// Filter restricts a query to documents whose Field matches Value under Op.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Eq is shorthand for an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Contains is shorthand for an array-contains filter.
func Contains(field string, value any) Filter {
	return Filter{Field: field, Op: OpArrayContains, Value: value}
}

// Query describes a read against one collection. Zero Limit means no limit.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int64
}

// Snapshot is a stored document together with its id.
type Snapshot struct {
	ID   string
	Data domain.Document
}

// Collection is a named set of schemaless documents.
type Collection interface {
	Name() string
	// Get returns ErrNotFound when no document exists at id.
	Get(ctx context.Context, id string) (domain.Document, error)
	Find(ctx context.Context, q Query) ([]Snapshot, error)
	// Add stores doc under a store-assigned id.
	Add(ctx context.Context, doc domain.Document) (string, error)
	// Set stores doc under a caller-assigned id, replacing any existing body.
	Set(ctx context.Context, id string, doc domain.Document) error
	// Update merges fields into the document at id. ErrNotFound when missing.
	Update(ctx context.Context, id string, fields domain.Document) error
	// Delete removes the document at id. ErrNotFound when missing.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}
