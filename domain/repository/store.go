package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOne and Delete when no row matches.
var ErrNotFound = errors.New("entity not found")

// Store is the read side every persistence store implements.
type Store[T any] interface {
	// Find returns all entities matching the given options.
	Find(ctx context.Context, options ...Option) ([]T, error)

	// FindOne returns the first entity matching the given options.
	FindOne(ctx context.Context, options ...Option) (T, error)

	// Exists reports whether any entity matches the given options.
	Exists(ctx context.Context, options ...Option) (bool, error)

	// Count returns the number of entities matching the given options.
	Count(ctx context.Context, options ...Option) (int64, error)
}

// Collection is a read-only view of a Store, exposing only Find and Get.
type Collection[T any] struct {
	store Store[T]
}

// NewCollection wraps a Store in a read-only Collection.
func NewCollection[T any](store Store[T]) Collection[T] {
	return Collection[T]{store: store}
}

// Find returns all entities matching the given options.
func (c Collection[T]) Find(ctx context.Context, options ...Option) ([]T, error) {
	return c.store.Find(ctx, options...)
}

// Get returns a single entity matching the given options.
func (c Collection[T]) Get(ctx context.Context, options ...Option) (T, error) {
	return c.store.FindOne(ctx, options...)
}
