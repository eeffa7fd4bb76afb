package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/observability"
)

// MemoryStore keeps documents in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := apperrors.ValidateMapName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()

	observability.Store().OnGet(ctx, "memory", name, ok, nil)
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(doc), nil
}

func (s *MemoryStore) Put(ctx context.Context, name string, doc []byte) error {
	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[name] = slices.Clone(doc)
	s.mu.Unlock()

	observability.Store().OnPut(ctx, "memory", name, len(doc), nil)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	_, ok := s.docs[name]
	delete(s.docs, name)
	s.mu.Unlock()

	if !ok {
		observability.Store().OnDelete(ctx, "memory", name, ErrNotFound)
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, "memory", name, nil)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.docs)), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
