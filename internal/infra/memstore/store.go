// Package memstore provides the process-local authoritative store backing
// every aggregate. A durable backend can replace it behind the same
// repository contracts.
package memstore

import (
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("entity not found")
	ErrDuplicateKey = errors.New("duplicate index key")
)

// Store is a concurrent keyed store with monotonic id allocation and an
// optional unique secondary index. Primary map and index are always
// mutated under one write lock, so readers never observe them out of
// sync. Callers must not invoke collaborators from inside guard or
// update closures; the store lock is held for their whole duration.
type Store[T any] struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]T
	keyFn  func(T) string // nil when the store has no secondary index
	index  map[string]int64
}

func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[int64]T)}
}

// NewIndexed builds a store with a unique secondary index. keyFn must be
// pure; an empty key is left unindexed.
func NewIndexed[T any](keyFn func(T) string) *Store[T] {
	return &Store[T]{
		items: make(map[int64]T),
		keyFn: keyFn,
		index: make(map[string]int64),
	}
}

// NextID hands out strictly increasing ids, never reusing one even under
// concurrent callers.
func (s *Store[T]) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Put inserts or replaces the entity at id. With a secondary index, a key
// already owned by a different id fails with ErrDuplicateKey and the
// store is left unchanged.
func (s *Store[T]) Put(id int64, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(id, v)
}

func (s *Store[T]) putLocked(id int64, v T) error {
	if s.keyFn != nil {
		newKey := s.keyFn(v)
		if newKey != "" {
			if ownerID, ok := s.index[newKey]; ok && ownerID != id {
				return ErrDuplicateKey
			}
		}
		if old, ok := s.items[id]; ok {
			if oldKey := s.keyFn(old); oldKey != "" && oldKey != newKey {
				delete(s.index, oldKey)
			}
		}
		if newKey != "" {
			s.index[newKey] = id
		}
	}
	s.items[id] = v
	return nil
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// GetByKey looks an entity up through the secondary index.
func (s *Store[T]) GetByKey(key string) (T, bool) {
	var zero T
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return zero, false
	}
	id, ok := s.index[key]
	if !ok {
		return zero, false
	}
	v, ok := s.items[id]
	return v, ok
}

// All returns a snapshot of every entity in unspecified order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

func (s *Store[T]) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.items[id]; ok && s.keyFn != nil {
		if key := s.keyFn(old); key != "" {
			delete(s.index, key)
		}
	}
	delete(s.items, id)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// InsertWith runs guard against the current contents and, if it passes,
// allocates an id and inserts the built entity, all under one write
// lock. Two racing inserts whose guards exclude each other can therefore
// never both commit.
func (s *Store[T]) InsertWith(guard func(existing []T) error, build func(id int64) T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	if guard != nil {
		existing := make([]T, 0, len(s.items))
		for _, v := range s.items {
			existing = append(existing, v)
		}
		if err := guard(existing); err != nil {
			return zero, err
		}
	}

	s.nextID++
	v := build(s.nextID)
	if err := s.putLocked(s.nextID, v); err != nil {
		return zero, err
	}
	return v, nil
}

// Update replaces the stored entity with fn's result under the write
// lock. fn must not mutate the current value; it builds a replacement,
// so pointers handed out by earlier reads stay immutable. Returning an
// error leaves the store unchanged.
func (s *Store[T]) Update(id int64, fn func(v T) (T, error)) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	next, err := fn(v)
	if err != nil {
		return zero, err
	}
	// Reindex in case the replacement changed the indexed key.
	if err := s.putLocked(id, next); err != nil {
		return zero, err
	}
	return next, nil
}
