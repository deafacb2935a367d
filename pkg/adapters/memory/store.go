package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/waymark/pkg/domain"
)

// Store implements ports.ResourceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]*domain.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]*domain.Record),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	// Copy to ensure isolation, similar to serialization
	copied := rec.WithRegistry(nil).Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.data[rec.Kind]
	if !ok {
		byID = make(map[string]*domain.Record)
		s.data[rec.Kind] = byID
	}
	byID[rec.ID] = copied
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, kind, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[kind][id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}

	// Copy on read so callers can't mutate the stored record by pointer
	return rec.Clone(), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[kind], id)
	if len(s.data[kind]) == 0 {
		delete(s.data, kind)
	}
	return nil
}

// List returns the stored ids of kind.
func (s *Store) List(ctx context.Context, kind string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data[kind]))
	for id := range s.data[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
