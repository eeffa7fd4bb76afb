package keyed

import (
	"errors"
	"iter"
	"slices"
	"strconv"
)

var (
	// ErrDuplicateKey is returned by [Collection.AppendKey] when the key is
	// already indexed.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrOutOfRange is returned by [Collection.RemoveAt] for positions
	// outside the sequence.
	ErrOutOfRange = errors.New("position out of range")
)

// KeyFunc derives a key for a value appended without an explicit key.
// It receives the collection so it can probe for collisions.
type KeyFunc[V comparable] func(v V, c *Collection[V]) string

// Option configures a Collection.
type Option[V comparable] func(*Collection[V])

// WithKeyFunc overrides the default key generator.
func WithKeyFunc[V comparable](fn KeyFunc[V]) Option[V] {
	return func(c *Collection[V]) {
		if fn != nil {
			c.keyFn = fn
		}
	}
}

// Collection is an ordered sequence of values with a key→position index and
// a position→key reverse index.
//
// The zero value is not usable - use New.
type Collection[V comparable] struct {
	values []V
	keys   []string       // position -> key
	index  map[string]int // key -> position
	keyFn  KeyFunc[V]
}

// New creates an empty collection.
func New[V comparable](opts ...Option[V]) *Collection[V] {
	c := &Collection[V]{
		index: make(map[string]int),
		keyFn: nextFreeKey[V],
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nextFreeKey starts at the number of indexed keys and counts upward until
// it finds an unused decimal key.
func nextFreeKey[V comparable](_ V, c *Collection[V]) string {
	for n := len(c.index); ; n++ {
		k := strconv.Itoa(n)
		if _, taken := c.index[k]; !taken {
			return k
		}
	}
}

// Append adds v at the end of the sequence under a derived key and returns
// that key. If the derived key is already in use, Append keeps probing with
// the default generator.
func (c *Collection[V]) Append(v V) string {
	key := c.keyFn(v, c)
	if _, taken := c.index[key]; taken {
		key = nextFreeKey(v, c)
	}
	c.push(key, v)
	return key
}

// AppendKey adds v at the end of the sequence under key.
// Returns ErrDuplicateKey if key is already indexed.
func (c *Collection[V]) AppendKey(key string, v V) error {
	if _, taken := c.index[key]; taken {
		return ErrDuplicateKey
	}
	c.push(key, v)
	return nil
}

func (c *Collection[V]) push(key string, v V) {
	c.values = append(c.values, v)
	c.keys = append(c.keys, key)
	c.index[key] = len(c.values) - 1
}

// RemoveAt removes the value at pos together with its index entries and
// returns it. Positions after pos shift down by one.
func (c *Collection[V]) RemoveAt(pos int) (V, error) {
	var zero V
	if pos < 0 || pos >= len(c.values) {
		return zero, ErrOutOfRange
	}
	v := c.values[pos]
	c.values = slices.Delete(c.values, pos, pos+1)
	c.keys = slices.Delete(c.keys, pos, pos+1)
	c.resync()
	return v, nil
}

// resync rebuilds the key index from the reverse index.
func (c *Collection[V]) resync() {
	clear(c.index)
	for pos, key := range c.keys {
		c.index[key] = pos
	}
}

// RemoveByKey removes the value indexed under key.
// It reports false if the key is unknown.
func (c *Collection[V]) RemoveByKey(key string) (V, bool) {
	pos, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	v, err := c.RemoveAt(pos)
	return v, err == nil
}

// RemoveValue removes the first occurrence of v.
// It reports false if v is not in the collection.
func (c *Collection[V]) RemoveValue(v V) bool {
	pos := slices.Index(c.values, v)
	if pos < 0 {
		return false
	}
	_, err := c.RemoveAt(pos)
	return err == nil
}

// Position returns the current position of key.
func (c *Collection[V]) Position(key string) (int, bool) {
	pos, ok := c.index[key]
	return pos, ok
}

// Get returns the value indexed under key.
func (c *Collection[V]) Get(key string) (V, bool) {
	pos, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.values[pos], true
}

// Contains reports whether key is indexed.
func (c *Collection[V]) Contains(key string) bool {
	_, ok := c.index[key]
	return ok
}

// At returns the value at pos. It panics if pos is out of range.
func (c *Collection[V]) At(pos int) V { return c.values[pos] }

// KeyAt returns the key at pos. It panics if pos is out of range.
func (c *Collection[V]) KeyAt(pos int) string { return c.keys[pos] }

// Len returns the number of values.
func (c *Collection[V]) Len() int { return len(c.values) }

// Keys returns the keys in sequence order.
func (c *Collection[V]) Keys() []string { return slices.Clone(c.keys) }

// Values returns the values in sequence order.
func (c *Collection[V]) Values() []V { return slices.Clone(c.values) }

// All iterates over key/value pairs in sequence order.
func (c *Collection[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, v := range c.values {
			if !yield(c.keys[i], v) {
				return
			}
		}
	}
}
