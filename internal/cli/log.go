package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmup/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered plan.svg (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports codec, cache and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerHooks installs logHooks as the global observability hooks.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetCodecHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h logHooks) OnEncode(_ context.Context, nodes, links int, d time.Duration, err error) {
	h.codec("encode", nodes, links, d, err)
}

func (h logHooks) OnDecode(_ context.Context, nodes, links int, d time.Duration, err error) {
	h.codec("decode", nodes, links, d, err)
}

func (h logHooks) codec(op string, nodes, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug(op+" failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug(op, "ideas", nodes, "links", links, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnGet(_ context.Context, backend, name string, found bool, err error) {
	h.logger.Debug("store get", "backend", backend, "name", name, "found", found, "error", err)
}

func (h logHooks) OnPut(_ context.Context, backend, name string, size int, err error) {
	h.logger.Debug("store put", "backend", backend, "name", name, "bytes", size, "error", err)
}

func (h logHooks) OnDelete(_ context.Context, backend, name string, err error) {
	h.logger.Debug("store delete", "backend", backend, "name", name, "error", err)
}
