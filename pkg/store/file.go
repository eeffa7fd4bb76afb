package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/observability"
)

// Ext is the file extension of stored maps.
const Ext = ".mup"

// FileStore keeps one file per map in a directory.
// Writes go through a temporary file and a rename, so readers never see a
// partially written document.
type FileStore struct {
	dir string
}

// NewFileStore creates a store in dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}

func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := apperrors.ValidateMapName(name); err != nil {
		return nil, err
	}
	doc, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		observability.Store().OnGet(ctx, "file", name, false, nil)
		return nil, ErrNotFound
	}
	observability.Store().OnGet(ctx, "file", name, err == nil, err)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return doc, nil
}

func (s *FileStore) Put(ctx context.Context, name string, doc []byte) (err error) {
	defer func() { observability.Store().OnPut(ctx, "file", name, len(doc), err) }()

	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateMapName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		observability.Store().OnDelete(ctx, "file", name, ErrNotFound)
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, "file", name, err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) List(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), Ext)
		if !ok || e.IsDir() || apperrors.ValidateMapName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
