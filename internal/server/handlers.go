package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindmup/pkg/cache"
	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/render"
	"github.com/matzehuels/mindmup/pkg/store"
)

type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"maps": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateMapName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.normalize(r.Context(), body, mindmup.EncodeOptions{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, out); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored map", "name", name, "bytes", len(out))
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("deleted map", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	t, _, err := s.load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	io.WriteString(w, render.ToDOT(t, renderOptions(r)))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, raw, err := s.load(ctx, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := renderOptions(r)
	key := s.keyer.RenderKey(cache.Hash(raw), cache.RenderKeyOpts{
		Format:        "svg",
		Detailed:      opts.Detailed,
		HideCollapsed: opts.HideCollapsed,
	})

	svg, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "error", err)
	}
	if !hit {
		svg, err = render.RenderSVG(ctx, render.ToDOT(t, opts))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.cache.Set(ctx, key, svg, s.ttl); err != nil {
			s.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := mindmup.EncodeOptions{AutoIncrement: true}
	if v := r.URL.Query().Get("auto_increment"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid auto_increment %q", v))
			return
		}
		opts.AutoIncrement = b
	}

	key := s.keyer.NormalizeKey(cache.Hash(body), cache.NormalizeKeyOpts{AutoIncrement: opts.AutoIncrement})
	out, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "error", err)
	}
	if !hit {
		out, err = s.normalize(ctx, body, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.cache.Set(ctx, key, out, s.ttl); err != nil {
			s.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

// normalize decodes a wire document and encodes it again with opts.
func (s *Server) normalize(ctx context.Context, body []byte, opts mindmup.EncodeOptions) ([]byte, error) {
	t, err := s.decode(ctx, body)
	if err != nil {
		return nil, err
	}
	doc, err := s.codec.Encode(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := mindmup.WriteJSON(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) decode(ctx context.Context, data []byte) (*idea.Tree, error) {
	doc, err := mindmup.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(ctx, doc)
}

// load fetches and decodes a stored map, returning the raw document too.
func (s *Server) load(ctx context.Context, name string) (*idea.Tree, []byte, error) {
	raw, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.decode(ctx, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("stored map %s: %w", name, err)
	}
	return t, raw, nil
}

func renderOptions(r *http.Request) render.Options {
	q := r.URL.Query()
	detailed, _ := strconv.ParseBool(q.Get("detailed"))
	hide, _ := strconv.ParseBool(q.Get("hide_collapsed"))
	return render.Options{Detailed: detailed, HideCollapsed: hide}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "document larger than %d bytes", tooLarge.Limit)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read body")
	}
	return body, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, status := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	} else if apperrors.GetCode(err) != "" {
		msg = apperrors.UserMessage(err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an error to its application code and HTTP status.
func classify(err error) (apperrors.Code, int) {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrCodeNotFound, http.StatusNotFound
	}
	code := mindmup.Code(err)
	switch {
	case code == apperrors.ErrCodeNotFound, code == apperrors.ErrCodeFileNotFound:
		return code, http.StatusNotFound
	case apperrors.IsClientError(code):
		return code, http.StatusBadRequest
	}
	return apperrors.ErrCodeInternal, http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
