package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmup/pkg/cache"
	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/store"
)

const sampleDoc = `{
  "id": 1,
  "title": "Plan",
  "formatVersion": 2,
  "ideas": {
    "2": {"id": 4, "title": "second"},
    "1": {"id": 9, "title": "first", "ideas": {"1": {"id": 3, "title": "leaf"}}}
  },
  "links": [{"ideaIdFrom": 3, "ideaIdTo": 4}]
}`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := New(Config{Store: st, Cache: fc, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, st
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func decodeError(t *testing.T, data []byte) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("error body %q: %v", data, err)
	}
	return e
}

func TestPutGetListDelete(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := do(t, http.MethodPut, ts.URL+"/maps/plan", sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", resp.StatusCode, body)
	}
	doc, err := mindmup.ReadJSON(strings.NewReader(string(body)))
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != 1 || doc.Ideas["1"].ID != 9 || doc.Ideas["2"].ID != 4 {
		t.Errorf("PUT renumbered ids: root %d, children %d %d", doc.ID, doc.Ideas["1"].ID, doc.Ideas["2"].ID)
	}

	resp, got := do(t, http.MethodGet, ts.URL+"/maps/plan", "")
	if resp.StatusCode != http.StatusOK || string(got) != string(body) {
		t.Errorf("GET = %d %s, want stored document", resp.StatusCode, got)
	}

	resp, got = do(t, http.MethodGet, ts.URL+"/maps", "")
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(got)) != `{"maps":["plan"]}` {
		t.Errorf("GET /maps = %d %s", resp.StatusCode, got)
	}

	resp, _ = do(t, http.MethodDelete, ts.URL+"/maps/plan", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}
	resp, got = do(t, http.MethodGet, ts.URL+"/maps/plan", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after DELETE = %d, want 404", resp.StatusCode)
	}
	if e := decodeError(t, got); e.Code != apperrors.ErrCodeNotFound {
		t.Errorf("error code = %s, want %s", e.Code, apperrors.ErrCodeNotFound)
	}
}

func TestListEmpty(t *testing.T) {
	ts, _ := newTestServer(t)
	_, got := do(t, http.MethodGet, ts.URL+"/maps", "")
	if strings.TrimSpace(string(got)) != `{"maps":[]}` {
		t.Errorf("GET /maps = %s, want empty list", got)
	}
}

func TestPutErrors(t *testing.T) {
	ts, st := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   apperrors.Code
	}{
		{"bad json", "/maps/x", `{"id":`, 400, apperrors.ErrCodeInvalidFormat},
		{"old version", "/maps/x", `{"id":1,"title":"a","formatVersion":1}`, 400, apperrors.ErrCodeUnsupportedVersion},
		{"duplicate id", "/maps/x", `{"id":1,"title":"a","formatVersion":2,"ideas":{"1":{"id":1,"title":"b"}}}`, 400, apperrors.ErrCodeDuplicateID},
		{"dangling link", "/maps/x", `{"id":1,"title":"a","formatVersion":2,"links":[{"ideaIdFrom":1,"ideaIdTo":99}]}`, 400, apperrors.ErrCodeLinkEndpoint},
		{"bad rank", "/maps/x", `{"id":1,"title":"a","formatVersion":2,"ideas":{"z":{"id":2,"title":"b"}}}`, 400, apperrors.ErrCodeInvalidFormat},
		{"bad name", "/maps/.secret", sampleDoc, 400, apperrors.ErrCodeInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPut, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if e := decodeError(t, body); e.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}

	if names, _ := st.List(context.Background()); len(names) != 0 {
		t.Errorf("rejected documents were stored: %v", names)
	}
}

func TestNormalize(t *testing.T) {
	ts, _ := newTestServer(t)

	for range 2 { // second request is served from the cache
		resp, body := do(t, http.MethodPost, ts.URL+"/normalize", sampleDoc)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, body %s", resp.StatusCode, body)
		}
		doc, err := mindmup.ReadJSON(strings.NewReader(string(body)))
		if err != nil {
			t.Fatal(err)
		}
		if doc.ID != 1 || doc.Ideas["1"].ID != 2 || doc.Ideas["1"].Ideas["1"].ID != 3 || doc.Ideas["2"].ID != 4 {
			t.Errorf("ids not renumbered in pre-order: %s", body)
		}
		if len(doc.Links) != 1 || doc.Links[0].IdeaIDFrom != 3 || doc.Links[0].IdeaIDTo != 4 {
			t.Errorf("links = %+v, want 3 -> 4", doc.Links)
		}
	}

	resp, body := do(t, http.MethodPost, ts.URL+"/normalize?auto_increment=false", sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"id": 9`) {
		t.Errorf("auto_increment=false renumbered ids: %s", body)
	}

	resp, _ = do(t, http.MethodPost, ts.URL+"/normalize?auto_increment=maybe", sampleDoc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad flag status = %d, want 400", resp.StatusCode)
	}
}

func TestDOT(t *testing.T) {
	ts, _ := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/maps/plan", sampleDoc)

	resp, body := do(t, http.MethodGet, ts.URL+"/maps/plan/dot?detailed=true", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %s", ct)
	}
	for _, want := range []string{"digraph G", "[1] Plan", "style=dashed"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("DOT missing %q:\n%s", want, body)
		}
	}

	resp, _ = do(t, http.MethodGet, ts.URL+"/maps/missing/dot", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing map status = %d, want 404", resp.StatusCode)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		code   apperrors.Code
		status int
	}{
		{store.ErrNotFound, apperrors.ErrCodeNotFound, 404},
		{apperrors.New(apperrors.ErrCodeInvalidName, "x"), apperrors.ErrCodeInvalidName, 400},
		{io.ErrClosedPipe, apperrors.ErrCodeInternal, 500},
	}
	for _, tt := range tests {
		code, status := classify(tt.err)
		if code != tt.code || status != tt.status {
			t.Errorf("classify(%v) = %s %d, want %s %d", tt.err, code, status, tt.code, tt.status)
		}
	}
}
