package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/observability"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "plan"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := s.Put(ctx, "plan", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "alpha", []byte(`{"id":2}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc, err := s.Get(ctx, "plan")
	if err != nil || string(doc) != `{"id":1}` {
		t.Errorf("Get = %q, %v", doc, err)
	}

	if err := s.Put(ctx, "plan", []byte(`{"id":3}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if doc, _ := s.Get(ctx, "plan"); string(doc) != `{"id":3}` {
		t.Errorf("Get after overwrite = %q", doc)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"alpha", "plan"}) {
		t.Errorf("List = %v, want [alpha plan]", names)
	}

	if err := s.Delete(ctx, "plan"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "plan"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	if names, _ := s.List(ctx); !slices.Equal(names, []string{"alpha"}) {
		t.Errorf("List after Delete = %v", names)
	}

	for _, bad := range []string{"", "../etc", ".hidden", "a/b"} {
		if err := s.Put(ctx, bad, []byte("{}")); apperrors.GetCode(err) != apperrors.ErrCodeInvalidName {
			t.Errorf("Put(%q) = %v, want %s", bad, err, apperrors.ErrCodeInvalidName)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := []byte("abc")
	s.Put(ctx, "m", doc)
	doc[0] = 'x'

	got, _ := s.Get(ctx, "m")
	if string(got) != "abc" {
		t.Errorf("stored doc aliased caller's slice: %q", got)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "maps"))
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, s)

	if _, err := os.Stat(filepath.Join(s.Dir(), "alpha.mup")); err != nil {
		t.Errorf("expected alpha.mup on disk: %v", err)
	}
}

func TestFileStoreListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644)
	os.WriteFile(filepath.Join(dir, ".plan.123.tmp"), nil, 0644)
	os.Mkdir(filepath.Join(dir, "sub.mup"), 0755)
	s.Put(context.Background(), "plan", []byte("{}"))

	names, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"plan"}) {
		t.Errorf("List = %v, want [plan]", names)
	}
}

type countingStoreHooks struct {
	observability.NoopStoreHooks
	gets, puts, deletes int
	missingDeletes      int
}

func (h *countingStoreHooks) OnGet(context.Context, string, string, bool, error) { h.gets++ }
func (h *countingStoreHooks) OnPut(context.Context, string, string, int, error)  { h.puts++ }
func (h *countingStoreHooks) OnDelete(_ context.Context, _, _ string, err error) {
	h.deletes++
	if errors.Is(err, ErrNotFound) {
		h.missingDeletes++
	}
}

func TestStoreHooks(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	backends := []struct {
		name  string
		store Store
	}{
		{"memory", NewMemoryStore()},
		{"file", fs},
	}
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			hooks := &countingStoreHooks{}
			observability.SetStoreHooks(hooks)
			defer observability.Reset()

			s := b.store
			s.Put(ctx, "m", []byte("{}"))
			s.Get(ctx, "m")
			s.Get(ctx, "missing")
			s.Delete(ctx, "m")
			s.Delete(ctx, "missing")

			if hooks.puts != 1 || hooks.gets != 2 || hooks.deletes != 2 {
				t.Errorf("hooks = %d puts, %d gets, %d deletes", hooks.puts, hooks.gets, hooks.deletes)
			}
			if hooks.missingDeletes != 1 {
				t.Errorf("missing deletes = %d, want 1", hooks.missingDeletes)
			}
		})
	}
}

// TestRedisStore runs against a real server when MINDMUP_TEST_REDIS names one.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("MINDMUP_TEST_REDIS")
	if addr == "" {
		t.Skip("MINDMUP_TEST_REDIS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	prefix := "mindmup-test:" + t.Name() + ":"
	client.Del(context.Background(), prefix+"maps", prefix+"map:plan", prefix+"map:alpha")

	s := NewRedisStore(client, prefix)
	defer s.Close()
	testStore(t, s)
}
