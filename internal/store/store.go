// Package store defines the persistence contract shared by the in-memory and
// SQL-backed collections.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Record is a value with a store-assigned identifier.
type Record[T any] interface {
	GetID() int64
	WithID(id int64) T
}

type Store[T Record[T]] interface {
	// Create assigns the next identifier and persists rec. Identifiers are
	// never reused, even after deletion.
	Create(ctx context.Context, rec T) (int64, error)
	Get(ctx context.Context, id int64) (T, error)
	// List returns records in insertion order.
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, rec T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// Seed inserts recs when s is empty.
func Seed[T Record[T]](ctx context.Context, s Store[T], recs ...T) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, rec := range recs {
		if _, err := s.Create(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}
