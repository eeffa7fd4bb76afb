package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "render:abc"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "render:abc", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "render:abc")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v, want <svg/> hit", data, hit, err)
	}

	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "render:abc"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	c.Set(ctx, "k:1", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k:1"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k:1")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k:1")
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte("not json"), 0644)

	if _, hit, err := c.Get(ctx, "k:1"); hit || err != nil {
		t.Errorf("Get corrupt = hit %v, err %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for i := range 5 {
		c.Set(ctx, fmt.Sprintf("render:%d", i), []byte("x"), 0)
	}

	n, err := c.Clear()
	if err != nil || n != 5 {
		t.Fatalf("Clear() = %d, %v, want 5", n, err)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	rk1 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg"})
	rk2 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg", Detailed: true})
	if rk1 == rk2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(rk1, "render:") {
		t.Errorf("RenderKey = %s, want render: prefix", rk1)
	}

	nk1 := k.NormalizeKey("hash123", NormalizeKeyOpts{})
	nk2 := k.NormalizeKey("hash123", NormalizeKeyOpts{AutoIncrement: true})
	if nk1 == nk2 {
		t.Error("Different NormalizeKeyOpts should produce different keys")
	}
	if k.NormalizeKey("other", NormalizeKeyOpts{}) == nk1 {
		t.Error("Different documents should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "mindmup:")

	key := scoped.RenderKey("h", RenderKeyOpts{Format: "dot"})
	want := "mindmup:" + NewDefaultKeyer().RenderKey("h", RenderKeyOpts{Format: "dot"})
	if key != want {
		t.Errorf("ScopedKeyer RenderKey = %s, want %s", key, want)
	}

	// Should use DefaultKeyer when inner is nil
	if got := NewScopedKeyer(nil, "p:").NormalizeKey("h", NormalizeKeyOpts{}); !strings.HasPrefix(got, "p:normalize:") {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"render:abc":                "render",
		"mindmup:staging:render:ab": "render",
		"normalize:x":               "normalize",
		"plain":                     "unknown",
	}
	for key, want := range tests {
		if got := keyType(key); got != want {
			t.Errorf("keyType(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) != nil")
	}
	err := Transient(ErrUnavailable)
	if !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Transient(ErrUnavailable) = %v, want transient wrapping ErrUnavailable", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrUnavailable.Error())
	}
	if IsTransient(errors.New("permanent")) {
		t.Error("plain error reported as transient")
	}
}

func TestRetryPolicy(t *testing.T) {
	ctx := context.Background()
	policy := RetryPolicy{Attempts: 3, Delay: time.Millisecond}
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, nil, 1, false},
		{"permanent", 5, permanent, 1, true},
		{"recovers", 1, Transient(ErrUnavailable), 2, false},
		{"exhausted", 5, Transient(ErrUnavailable), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := policy.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultRetry.Do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) != nil")
	}
	if err := classify(redis.Nil); err != redis.Nil {
		t.Errorf("classify(redis.Nil) = %v", err)
	}
	if err := classify(io.EOF); !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("classify(EOF) = %v, want transient unavailable error", err)
	}
	if err := classify(errors.New("WRONGTYPE")); IsTransient(err) {
		t.Errorf("classify(WRONGTYPE) = %v, want permanent", err)
	}
}

// TestRedisCache runs against a real server when MINDMUP_TEST_REDIS names one.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("MINDMUP_TEST_REDIS")
	if addr == "" {
		t.Skip("MINDMUP_TEST_REDIS not set")
	}
	ctx := context.Background()
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: addr}), "mindmup-test:"+t.Name()+":")
	defer c.Close()

	if _, hit, err := c.Get(ctx, "render:x"); hit || err != nil {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "render:x", []byte("svg"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, "render:x"); !hit || err != nil || string(data) != "svg" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "render:x"); err != nil {
		t.Fatal(err)
	}
}
