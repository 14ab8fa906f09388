package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Schema describes how one entity type lives in its collection.
type Schema[T any] struct {
	Collection string
	Decode     func(id string, doc domain.Document) T
	Encode     func(T) domain.Document

	// ParentField is the foreign-key-like field used by ListByParent.
	ParentField string
	// OrderBy is the default sort field for listings.
	OrderBy    string
	Descending bool
	// ActiveField is the soft-delete flag. Empty when the entity has none.
	ActiveField string
	// TouchField is stamped with the current time on every update.
	TouchField string
}

// Manager exposes the list/get/create/update/delete/toggle operations of one
// collection, mapping documents through the entity's Schema.
type Manager[T any] struct {
	coll   Collection
	schema Schema[T]
	fields map[string]struct{}
}

// NewManager binds schema to its collection in store.
func NewManager[T any](store Store, schema Schema[T]) *Manager[T] {
	var zero T
	fields := make(map[string]struct{})
	for k := range schema.Encode(zero) {
		fields[k] = struct{}{}
	}
	return &Manager[T]{
		coll:   store.Collection(schema.Collection),
		schema: schema,
		fields: fields,
	}
}

// ListAll returns every entity in the schema's default order. With activeOnly
// set, soft-deleted entities are left out.
func (m *Manager[T]) ListAll(ctx context.Context, activeOnly bool) ([]T, error) {
	return m.List(ctx, nil, activeOnly, 0)
}

// ListByParent is ListAll restricted to entities whose parent field equals parentID.
func (m *Manager[T]) ListByParent(ctx context.Context, parentID string, activeOnly bool) ([]T, error) {
	if m.schema.ParentField == "" {
		return nil, fmt.Errorf("%w: %s has no parent field", ErrInvalidField, m.schema.Collection)
	}
	return m.List(ctx, []Filter{Eq(m.schema.ParentField, parentID)}, activeOnly, 0)
}

// List runs a filtered query in the schema's default order.
func (m *Manager[T]) List(ctx context.Context, filters []Filter, activeOnly bool, limit int64) ([]T, error) {
	q := Query{
		Filters:    append([]Filter(nil), filters...),
		OrderBy:    m.schema.OrderBy,
		Descending: m.schema.Descending,
		Limit:      limit,
	}
	if activeOnly && m.schema.ActiveField != "" {
		q.Filters = append(q.Filters, Eq(m.schema.ActiveField, true))
	}

	snaps, err := m.coll.Find(ctx, q)
	if err != nil {
		log.Printf("ERROR: Failed to list %s: %v", m.schema.Collection, err)
		return nil, fmt.Errorf("list %s: %w", m.schema.Collection, err)
	}

	out := make([]T, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, m.schema.Decode(s.ID, s.Data))
	}
	return out, nil
}

// GetByID returns nil without an error when no document exists at id.
func (m *Manager[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := m.coll.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: Failed to get %s '%s': %v", m.schema.Collection, id, err)
		return nil, fmt.Errorf("get %s %s: %w", m.schema.Collection, id, err)
	}
	entity := m.schema.Decode(id, doc)
	return &entity, nil
}

// Create stores entity under a store-assigned id and returns that id.
func (m *Manager[T]) Create(ctx context.Context, entity T) (string, error) {
	id, err := m.coll.Add(ctx, m.schema.Encode(entity))
	if err != nil {
		log.Printf("ERROR: Failed to create %s: %v", m.schema.Collection, err)
		return "", fmt.Errorf("create %s: %w", m.schema.Collection, err)
	}
	return id, nil
}

// CreateWithID stores entity under a caller-assigned id, e.g. an auth uid.
func (m *Manager[T]) CreateWithID(ctx context.Context, id string, entity T) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidField)
	}
	if err := m.coll.Set(ctx, id, m.schema.Encode(entity)); err != nil {
		log.Printf("ERROR: Failed to create %s '%s': %v", m.schema.Collection, id, err)
		return fmt.Errorf("create %s %s: %w", m.schema.Collection, id, err)
	}
	return nil
}

// Update merges partial into the stored document. Keys not declared by the
// entity are rejected; keys absent from partial are left untouched.
func (m *Manager[T]) Update(ctx context.Context, id string, partial domain.Document) error {
	fields := make(domain.Document, len(partial)+1)
	for k, v := range partial {
		if _, ok := m.fields[k]; !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrInvalidField, m.schema.Collection, k)
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil
	}
	if m.schema.TouchField != "" {
		fields[m.schema.TouchField] = time.Now().UTC()
	}

	if err := m.coll.Update(ctx, id, fields); err != nil {
		log.Printf("ERROR: Failed to update %s '%s': %v", m.schema.Collection, id, err)
		return fmt.Errorf("update %s %s: %w", m.schema.Collection, id, err)
	}
	return nil
}

// UpdateFields encodes entity and writes only the listed keys.
func (m *Manager[T]) UpdateFields(ctx context.Context, id string, entity T, keys []string) error {
	doc := m.schema.Encode(entity)
	partial := make(domain.Document, len(keys))
	for _, k := range keys {
		v, ok := doc[k]
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrInvalidField, m.schema.Collection, k)
		}
		partial[k] = v
	}
	return m.Update(ctx, id, partial)
}

// Delete removes the document. Deleting a missing id is not an error.
func (m *Manager[T]) Delete(ctx context.Context, id string) error {
	err := m.coll.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("ERROR: Failed to delete %s '%s': %v", m.schema.Collection, id, err)
		return fmt.Errorf("delete %s %s: %w", m.schema.Collection, id, err)
	}
	return nil
}

// ToggleActive writes exactly the soft-delete flag.
func (m *Manager[T]) ToggleActive(ctx context.Context, id string, isActive bool) error {
	if m.schema.ActiveField == "" {
		return fmt.Errorf("%w: %s has no active flag", ErrInvalidField, m.schema.Collection)
	}
	err := m.coll.Update(ctx, id, domain.Document{m.schema.ActiveField: isActive})
	if err != nil {
		log.Printf("ERROR: Failed to toggle active state for %s '%s': %v", m.schema.Collection, id, err)
		return fmt.Errorf("toggle %s %s: %w", m.schema.Collection, id, err)
	}
	return nil
}

// HasField reports whether key is a declared document key.
func (m *Manager[T]) HasField(key string) bool {
	_, ok := m.fields[strings.TrimSpace(key)]
	return ok
}
