package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a process-wide synchronized-map fallback store with the
// same per-user shape as the Postgres repositories. It backs the server when
// no database is configured and the service tests.
//
// Entities are defensively copied on both write and read so callers never
// share state with the store.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	data  map[uuid.UUID]map[string]*T // userID -> business id -> entity
	key   func(*T) string
	clone func(*T) *T
}

// NewMemoryStore creates an empty store. key extracts the business id of an
// entity; clone produces a defensive copy (normally the entity's Copy
// method expression, e.g. (*models.Task).Copy).
func NewMemoryStore[T any](key func(*T) string, clone func(*T) *T) *MemoryStore[T] {
	return &MemoryStore[T]{
		data:  make(map[uuid.UUID]map[string]*T),
		key:   key,
		clone: clone,
	}
}

// ExistsByID checks whether an entity with the given business id exists for
// the user.
func (s *MemoryStore[T]) ExistsByID(_ context.Context, userID uuid.UUID, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[userID][id]
	return ok, nil
}

// Create inserts a new entity for the user. Returns ErrDuplicate when the
// business id is already taken; an existing entry is never overwritten.
func (s *MemoryStore[T]) Create(_ context.Context, userID uuid.UUID, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(entity)
	byID, ok := s.data[userID]
	if !ok {
		byID = make(map[string]*T)
		s.data[userID] = byID
	}
	if _, exists := byID[id]; exists {
		return ErrDuplicate
	}
	byID[id] = s.clone(entity)
	return nil
}

// Update replaces an existing entity for the user. Returns ErrNotFound when
// the user has no entity with that business id.
func (s *MemoryStore[T]) Update(_ context.Context, userID uuid.UUID, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(entity)
	byID := s.data[userID]
	if _, exists := byID[id]; !exists {
		return ErrNotFound
	}
	byID[id] = s.clone(entity)
	return nil
}

// FindByID fetches a defensive copy of a single entity for the user.
func (s *MemoryStore[T]) FindByID(_ context.Context, userID uuid.UUID, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.data[userID][id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(entity), nil
}

// FindAll fetches defensive copies of all entities belonging to the user.
func (s *MemoryStore[T]) FindAll(_ context.Context, userID uuid.UUID) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*T
	for _, entity := range s.data[userID] {
		out = append(out, s.clone(entity))
	}
	return out, nil
}

// FindMatching fetches defensive copies of the user's entities that satisfy
// match.
func (s *MemoryStore[T]) FindMatching(_ context.Context, userID uuid.UUID, match func(*T) bool) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*T
	for _, entity := range s.data[userID] {
		if match(entity) {
			out = append(out, s.clone(entity))
		}
	}
	return out, nil
}

// DeleteByID removes an entity by business id for the user. The second
// delete of the same id returns ErrNotFound.
func (s *MemoryStore[T]) DeleteByID(_ context.Context, userID uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.data[userID]
	if _, exists := byID[id]; !exists {
		return ErrNotFound
	}
	delete(byID, id)
	return nil
}

// DeleteAll empties the store. Test isolation hook.
func (s *MemoryStore[T]) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[uuid.UUID]map[string]*T)
}
