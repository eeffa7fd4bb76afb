// Package cache stores rendered and normalized artifacts keyed by content.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared redis instance, for the HTTP API
//
// # Keys
//
// Keys are built by a [Keyer] from the hash of the encoded document and the
// options that influence the artifact, so any change to the map or to the
// options yields a new key and stale entries are never served:
//
//	k := cache.NewDefaultKeyer()
//	key := k.RenderKey(cache.Hash(doc), cache.RenderKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data, nil
//	}
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value cache with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. A miss is reported with
	// ok=false and a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer builds cache keys for the artifact kinds the application caches.
type Keyer interface {
	// RenderKey is the key of a rendered diagram of a document.
	RenderKey(docHash string, opts RenderKeyOpts) string

	// NormalizeKey is the key of the re-encoded form of a document.
	NormalizeKey(docHash string, opts NormalizeKeyOpts) string
}

// RenderKeyOpts lists the options that change a rendered diagram.
type RenderKeyOpts struct {
	Format        string `json:"format"`
	Detailed      bool   `json:"detailed,omitempty"`
	HideCollapsed bool   `json:"hide_collapsed,omitempty"`
}

// NormalizeKeyOpts lists the options that change a normalized document.
type NormalizeKeyOpts struct {
	AutoIncrement bool `json:"auto_increment,omitempty"`
}

// DefaultKeyer builds keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return Key("render", docHash, opts)
}

// NormalizeKey implements Keyer.
func (DefaultKeyer) NormalizeKey(docHash string, opts NormalizeKeyOpts) string {
	return Key("normalize", docHash, opts)
}

// keyType returns the artifact kind of a key for observability events.
// Keys end in "kind:hash", optionally behind a scope prefix.
func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "unknown"
	}
	return key[strings.LastIndexByte(key[:i], ':')+1 : i]
}
