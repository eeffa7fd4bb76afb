// Package store persists MindMup documents by name.
//
// A [Store] holds raw wire JSON; callers decode it with the mindmup codec.
// Names are validated with [apperrors.ValidateMapName] before they reach a
// backend, so they are always safe as file names and redis keys.
//
// # Backends
//
//   - [MemoryStore]: process-local map, for tests and ephemeral servers
//   - [FileStore]: one "<name>.mup" file per map in a directory
//   - [RedisStore]: one redis string per map plus a set of names
//
// [apperrors.ValidateMapName]: github.com/matzehuels/mindmup/pkg/errors
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned for maps that are not stored.
var ErrNotFound = errors.New("map not found")

// Store is a named collection of MindMup documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the document stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put stores doc under name, replacing any previous document.
	Put(ctx context.Context, name string, doc []byte) error

	// Delete removes the document stored under name, or returns ErrNotFound.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}
