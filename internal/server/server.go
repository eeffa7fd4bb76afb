// Package server exposes stored MindMup maps over HTTP.
//
// Routes:
//
//	GET    /maps              list stored map names
//	GET    /maps/{name}       stored document
//	PUT    /maps/{name}       validate, normalize and store a document
//	DELETE /maps/{name}       remove a document
//	GET    /maps/{name}/dot   Graphviz DOT for a stored map
//	GET    /maps/{name}/svg   rendered SVG for a stored map
//	POST   /normalize         renumber a document without storing it
//
// Errors are returned as {"code": ..., "message": ...} using the codes of
// the pkg/errors package.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindmup/pkg/cache"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/store"
)

// MaxBodySize bounds request documents.
const MaxBodySize = 16 << 20

// Config configures a Server. Store is required.
type Config struct {
	Store  store.Store
	Cache  cache.Cache   // nil disables caching
	Keyer  cache.Keyer   // nil uses cache.DefaultKeyer
	Logger *log.Logger   // nil uses log.Default
	TTL    time.Duration // cache entry lifetime, 0 keeps entries forever
}

// Server serves the map API.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	codec  *mindmup.Codec
	logger *log.Logger
	ttl    time.Duration
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		store:  cfg.Store,
		cache:  cfg.Cache,
		keyer:  cfg.Keyer,
		logger: cfg.Logger,
		ttl:    cfg.TTL,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.codec = mindmup.New(s.logger)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/maps", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/dot", s.handleDOT)
			r.Get("/svg", s.handleSVG)
		})
	})
	r.Post("/normalize", s.handleNormalize)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
