package keyed

import (
	"errors"
	"slices"
	"testing"
)

func TestAppendDerivesKeys(t *testing.T) {
	c := New[string]()
	k0 := c.Append("a")
	k1 := c.Append("b")

	if k0 != "0" || k1 != "1" {
		t.Errorf("derived keys = %q, %q, want %q, %q", k0, k1, "0", "1")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestAppendSkipsTakenKeys(t *testing.T) {
	c := New[string]()
	if err := c.AppendKey("1", "explicit"); err != nil {
		t.Fatalf("AppendKey: %v", err)
	}
	// len(index) == 1 and "1" is taken, so the generator moves on to "2".
	if got := c.Append("derived"); got != "2" {
		t.Errorf("Append() key = %q, want %q", got, "2")
	}
}

func TestAppendKeyDuplicate(t *testing.T) {
	c := New[string]()
	if err := c.AppendKey("x", "a"); err != nil {
		t.Fatalf("AppendKey: %v", err)
	}
	err := c.AppendKey("x", "b")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("AppendKey duplicate error = %v, want ErrDuplicateKey", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestWithKeyFunc(t *testing.T) {
	c := New(WithKeyFunc(func(v string, _ *Collection[string]) string { return "k-" + v }))
	if got := c.Append("a"); got != "k-a" {
		t.Errorf("Append() key = %q, want %q", got, "k-a")
	}
	// A colliding derived key falls back to the synthetic generator.
	if got := c.Append("a"); got != "1" {
		t.Errorf("colliding Append() key = %q, want %q", got, "1")
	}
}

func TestRemoveAtMiddleResyncsIndex(t *testing.T) {
	c := New[string]()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		if err := c.AppendKey(k, "v"+k); err != nil {
			t.Fatalf("AppendKey(%q): %v", k, err)
		}
	}

	v, err := c.RemoveAt(2)
	if err != nil {
		t.Fatalf("RemoveAt(2): %v", err)
	}
	if v != "vc" {
		t.Errorf("RemoveAt(2) = %q, want %q", v, "vc")
	}

	tests := []struct {
		key     string
		wantPos int
		wantVal string
	}{
		{"a", 0, "va"},
		{"b", 1, "vb"},
		{"d", 2, "vd"},
		{"e", 3, "ve"},
	}
	for _, tt := range tests {
		pos, ok := c.Position(tt.key)
		if !ok || pos != tt.wantPos {
			t.Errorf("Position(%q) = %d, %v, want %d, true", tt.key, pos, ok, tt.wantPos)
		}
		got, ok := c.Get(tt.key)
		if !ok || got != tt.wantVal {
			t.Errorf("Get(%q) = %q, %v, want %q, true", tt.key, got, ok, tt.wantVal)
		}
		if c.KeyAt(tt.wantPos) != tt.key {
			t.Errorf("KeyAt(%d) = %q, want %q", tt.wantPos, c.KeyAt(tt.wantPos), tt.key)
		}
	}
	if c.Contains("c") {
		t.Error("removed key c still indexed")
	}
}

func TestRemoveByKeyRepeatedly(t *testing.T) {
	c := New[int]()
	for i := range 6 {
		c.Append(i * 10)
	}

	// Remove interior keys in an order that exercises stale positions.
	for _, key := range []string{"2", "4", "1"} {
		if _, ok := c.RemoveByKey(key); !ok {
			t.Fatalf("RemoveByKey(%q) reported missing", key)
		}
	}

	wantKeys := []string{"0", "3", "5"}
	if !slices.Equal(c.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", c.Keys(), wantKeys)
	}
	wantVals := []int{0, 30, 50}
	if !slices.Equal(c.Values(), wantVals) {
		t.Errorf("Values() = %v, want %v", c.Values(), wantVals)
	}
	for i, key := range wantKeys {
		if pos, _ := c.Position(key); pos != i {
			t.Errorf("Position(%q) = %d, want %d", key, pos, i)
		}
	}

	if _, ok := c.RemoveByKey("missing"); ok {
		t.Error("RemoveByKey(missing) reported success")
	}
}

func TestRemoveValue(t *testing.T) {
	c := New[string]()
	c.Append("a")
	c.Append("b")
	c.Append("c")

	if !c.RemoveValue("b") {
		t.Fatal("RemoveValue(b) = false")
	}
	if c.RemoveValue("b") {
		t.Error("second RemoveValue(b) = true")
	}
	if v, ok := c.Get("2"); !ok || v != "c" {
		t.Errorf("Get(2) = %q, %v, want c, true", v, ok)
	}
	if pos, _ := c.Position("2"); pos != 1 {
		t.Errorf("Position(2) = %d, want 1", pos)
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	c := New[string]()
	c.Append("a")
	for _, pos := range []int{-1, 1, 5} {
		if _, err := c.RemoveAt(pos); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("RemoveAt(%d) error = %v, want ErrOutOfRange", pos, err)
		}
	}
}

func TestAppendAfterRemoval(t *testing.T) {
	c := New[string]()
	c.Append("a") // 0
	c.Append("b") // 1
	c.Append("c") // 2
	c.RemoveByKey("0")

	// Two keys remain, "2" is taken, so the next free key is "3".
	if got := c.Append("d"); got != "3" {
		t.Errorf("Append() key = %q, want %q", got, "3")
	}
	if pos, _ := c.Position("3"); pos != 2 {
		t.Errorf("Position(3) = %d, want 2", pos)
	}
}

func TestAllStopsEarly(t *testing.T) {
	c := New[string]()
	c.Append("a")
	c.Append("b")
	c.Append("c")

	var seen []string
	for k, v := range c.All() {
		seen = append(seen, k+"="+v)
		if len(seen) == 2 {
			break
		}
	}
	want := []string{"0=a", "1=b"}
	if !slices.Equal(seen, want) {
		t.Errorf("All() = %v, want %v", seen, want)
	}
}
