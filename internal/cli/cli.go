// Package cli implements the mindmup command-line interface.
//
// The commands read, normalize and inspect MindMup files, convert TOML
// outlines, render maps through Graphviz, manage a document store and serve
// the HTTP API. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - normalize: decode and re-encode a map, renumbering ids
//   - validate: check one or more maps
//   - inspect: print a map as a tree or a measurement table
//   - render: generate DOT, SVG, PDF or PNG diagrams
//   - outline: convert between TOML outlines and maps
//   - link: add or remove a link between two ideas
//   - browse: interactive tree browser
//   - store: put, get, list and remove stored maps
//   - serve: run the HTTP API
//   - cache: manage the render cache
//   - config: print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. At debug
// level codec, cache and store events are logged as well.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/mindmup/pkg/cache"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "mindmup"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// redis key prefixes; the cache prefix is nested so the store never sees cache keys.
const (
	redisStorePrefix = appName + ":"
	redisCachePrefix = appName + ":cache:"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) codec() *mindmup.Codec {
	return &mindmup.Codec{Logger: c.Logger, Lenient: c.Config.Lenient}
}

func (c *CLI) redisClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: c.Config.RedisAddr})
}

// newCache opens the render cache: redis when configured, else a file cache.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		return cache.NewRedisCache(c.redisClient(), redisCachePrefix), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the document store: redis when configured, else a directory.
func (c *CLI) newStore() (store.Store, error) {
	if c.Config.RedisAddr != "" {
		return store.NewRedisStore(c.redisClient(), redisStorePrefix), nil
	}
	dir, err := c.storeDir()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(dir)
}

// storeLocation describes where newStore keeps maps.
func (c *CLI) storeLocation() string {
	if c.Config.RedisAddr != "" {
		return "redis://" + c.Config.RedisAddr
	}
	dir, err := c.storeDir()
	if err != nil {
		return "unknown"
	}
	return dir
}

// =============================================================================
// Paths
// =============================================================================

func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

func (c *CLI) storeDir() (string, error) {
	if c.Config.StoreDir != "" {
		return c.Config.StoreDir, nil
	}
	return dataDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mindmup/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// dataDir returns the default store directory (~/.local/share/mindmup/).
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// configDir returns the configuration directory (~/.config/mindmup/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
