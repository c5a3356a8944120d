// Package storage is the board's persistence adapter: a string-keyed store of
// JSON documents that degrades to a no-op when its backend fails.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by a Backend when no value is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a raw byte store. Implementations report every failure; the
// Adapter decides which ones to absorb.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany stores all values atomically where the backend supports it.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PersistenceError records a backend failure that was absorbed by the Adapter.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
