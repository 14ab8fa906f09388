// Package memory is a process-local document store used by tests and by the
// server when no database is configured.
package memory

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps every collection in maps guarded by one mutex.
type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]domain.Document
	// failWith, when set, is returned by every operation.
	failWith error
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]domain.Document)}
}

// Collection implements repository.Store.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{store: s, name: name}
}

// FailWith makes every later operation return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Len returns the number of documents in the named collection.
func (s *Store) Len(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[name])
}

func (s *Store) docs(name string) map[string]domain.Document {
	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]domain.Document)
		s.collections[name] = docs
	}
	return docs
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Name() string { return c.name }

func (c *collection) Get(ctx context.Context, id string) (domain.Document, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return nil, err
	}
	doc, ok := c.store.docs(c.name)[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDocument(doc), nil
}

func (c *collection) Find(ctx context.Context, q repository.Query) ([]repository.Snapshot, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return nil, err
	}

	var out []repository.Snapshot
	for id, doc := range c.store.docs(c.name) {
		ok, err := matchesAll(doc, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, repository.Snapshot{ID: id, Data: copyDocument(doc)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if q.OrderBy == "" {
			return out[i].ID < out[j].ID
		}
		a, aok := out[i].Data[q.OrderBy]
		b, bok := out[j].Data[q.OrderBy]
		// A missing order field compares below any value, as in MongoDB.
		aHas, bHas := aok && a != nil, bok && b != nil
		if !aHas || !bHas {
			if aHas != bHas {
				return aHas == q.Descending
			}
			return out[i].ID < out[j].ID
		}
		cmp := compare(a, b)
		if cmp == 0 {
			return out[i].ID < out[j].ID
		}
		if q.Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	if out == nil {
		out = []repository.Snapshot{}
	}
	return out, nil
}

func (c *collection) Add(ctx context.Context, doc domain.Document) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return "", err
	}
	id := uuid.NewString()
	c.store.docs(c.name)[id] = copyDocument(doc)
	return id, nil
}

func (c *collection) Set(ctx context.Context, id string, doc domain.Document) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return err
	}
	c.store.docs(c.name)[id] = copyDocument(doc)
	return nil
}

func (c *collection) Update(ctx context.Context, id string, fields domain.Document) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return err
	}
	doc, ok := c.store.docs(c.name)[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = copyValue(v)
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.failWith; err != nil {
		return err
	}
	docs := c.store.docs(c.name)
	if _, ok := docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(docs, id)
	return nil
}

func matchesAll(doc domain.Document, filters []repository.Filter) (bool, error) {
	for _, f := range filters {
		v, ok := doc[f.Field]
		switch f.Op {
		case repository.OpEqual:
			if !ok || !equal(v, f.Value) {
				return false, nil
			}
		case repository.OpArrayContains:
			if !ok || !contains(v, f.Value) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("%w: unsupported operator %q", repository.ErrInvalidField, f.Op)
		}
	}
	return true, nil
}

func equal(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	switch a.(type) {
	case string, bool:
		return a == b
	}
	return false
}

func contains(list, v any) bool {
	switch l := list.(type) {
	case []string:
		for _, item := range l {
			if equal(item, v) {
				return true
			}
		}
	case []any:
		for _, item := range l {
			if equal(item, v) {
				return true
			}
		}
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// compare orders values of the same kind. Mixed kinds compare equal.
func compare(a, b any) int {
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
		}
		return 0
	}
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case string:
		if y, ok := b.(string); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
		}
	case bool:
		if y, ok := b.(bool); ok && x != y {
			if !x {
				return -1
			}
			return 1
		}
	}
	return 0
}

func copyDocument(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case domain.Document:
		return copyDocument(x)
	case map[string]any:
		return map[string]any(copyDocument(x))
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case *float64:
		if x == nil {
			return nil
		}
		f := *x
		return f
	}
	return v
}
