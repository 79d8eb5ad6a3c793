package memory

import (
	"context"
	"coursehub/internal/store"
	"sync"
)

// Store keeps records in a slice ordered by id. The zero value is not usable;
// call New.
type Store[T store.Record[T]] struct {
	mu      sync.RWMutex
	records []T
	nextID  int64
}

func New[T store.Record[T]]() *Store[T] {
	return &Store[T]{nextID: 1}
}

func (s *Store[T]) Create(_ context.Context, rec T) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.records = append(s.records, rec.WithID(id))

	return id, nil
}

func (s *Store[T]) Get(_ context.Context, id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, store.ErrNotFound
	}

	return s.records[i], nil
}

func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	copy(out, s.records)

	return out, nil
}

func (s *Store[T]) Update(_ context.Context, id int64, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.records[i] = rec.WithID(id)

	return nil
}

func (s *Store[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.records = append(s.records[:i], s.records[i+1:]...)

	return nil
}

func (s *Store[T]) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records), nil
}

// index must be called with mu held.
func (s *Store[T]) index(id int64) int {
	for i, rec := range s.records {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}
