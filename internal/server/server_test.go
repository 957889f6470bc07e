package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	"github.com/matzehuels/jsoncanvas/pkg/config"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
	"github.com/matzehuels/jsoncanvas/pkg/store"
)

const (
	nodeA = `{"id":"a","x":0,"y":0,"width":100,"height":50,"type":"text","text":"A"}`
	nodeB = `{"id":"b","x":200,"y":0,"width":100,"height":50,"type":"text","text":"B"}`
	doc   = `{"nodes":[` + nodeA + `,` + nodeB + `],"edges":[{"id":"e","fromNode":"a","toNode":"b","toEnd":"arrow"}]}`
)

func newTestServer(t *testing.T, opts Options) (*httptest.Server, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	srv := httptest.NewServer(New(s, opts, log.New(io.Discard)).Handler())
	t.Cleanup(srv.Close)
	return srv, s
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(data)
}

func decodeError(t *testing.T, body string) ErrorDetail {
	t.Helper()
	var e ErrorBody
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("error body %q: %v", body, err)
	}
	return e.Error
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h HealthResponse
	if err := json.Unmarshal([]byte(body), &h); err != nil || h.Status != "ok" {
		t.Errorf("health = %s", body)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		body   string
		status int
		code   cerrors.Code
		path   string
	}{
		{"valid", Options{}, doc, http.StatusOK, "", ""},
		{"lenient references", Options{}, `{"edges":[{"id":"e","fromNode":"x","toNode":"y"}]}`, http.StatusOK, "", ""},
		{"strict references", Options{Decode: canvas.DecodeOptions{ValidateReferences: true}},
			`{"edges":[{"id":"e","fromNode":"x","toNode":"y"}]}`, http.StatusUnprocessableEntity, cerrors.ErrCodeDanglingEndpoint, "edges[0]"},
		{"malformed json", Options{}, `{"nodes":`, http.StatusUnprocessableEntity, cerrors.ErrCodeParse, ""},
		{"duplicate", Options{}, `{"nodes":[` + nodeA + `,` + nodeA + `]}`, http.StatusConflict, cerrors.ErrCodeDuplicateNodeID, "nodes[1]"},
		{"bad color", Options{}, `{"nodes":[{"id":"a","x":0,"y":0,"width":1,"height":1,"color":"#1","type":"text","text":""}]}`,
			http.StatusUnprocessableEntity, cerrors.ErrCodeMalformedColor, "nodes[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.opts)
			resp, body := do(t, http.MethodPost, srv.URL+"/api/validate", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if tt.code == "" {
				var sum SummaryResponse
				if err := json.Unmarshal([]byte(body), &sum); err != nil || !sum.Valid {
					t.Errorf("summary = %s", body)
				}
				return
			}
			e := decodeError(t, body)
			if e.Code != tt.code || e.Path != tt.path {
				t.Errorf("error = %+v, want code %s path %q", e, tt.code, tt.path)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	messy := "{ \"nodes\" : [ " + nodeA + " ] }"

	resp, body := do(t, http.MethodPost, srv.URL+"/api/format", messy)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if want := `{"nodes":[` + nodeA + "]}\n"; body != want {
		t.Errorf("compact = %q, want %q", body, want)
	}

	_, body = do(t, http.MethodPost, srv.URL+"/api/format?indent=2", messy)
	if !strings.HasPrefix(body, "{\n  \"nodes\": [") {
		t.Errorf("indented = %q", body)
	}

	resp, body = do(t, http.MethodPost, srv.URL+"/api/format?indent=wide", messy)
	if resp.StatusCode != http.StatusBadRequest || decodeError(t, body).Code != cerrors.ErrCodeInvalidInput {
		t.Errorf("bad indent: %d %s", resp.StatusCode, body)
	}
}

func TestCanvasLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	base := srv.URL + "/api/canvases"

	resp, body := do(t, http.MethodGet, base+"/board", "")
	if resp.StatusCode != http.StatusNotFound || decodeError(t, body).Code != cerrors.ErrCodeCanvasNotFound {
		t.Fatalf("missing canvas: %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodPut, base+"/board", `{"nodes":[`+nodeA+`]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodPost, base+"/board/nodes", nodeB)
	if resp.StatusCode != http.StatusCreated || body != nodeB {
		t.Fatalf("add node: %d %s", resp.StatusCode, body)
	}
	resp, body = do(t, http.MethodPost, base+"/board/nodes", nodeB)
	if resp.StatusCode != http.StatusConflict || decodeError(t, body).Code != cerrors.ErrCodeDuplicateNodeID {
		t.Errorf("duplicate node: %d %s", resp.StatusCode, body)
	}

	edge := `{"id":"e","fromNode":"a","toNode":"b"}`
	resp, body = do(t, http.MethodPost, base+"/board/edges", edge)
	if resp.StatusCode != http.StatusCreated || body != edge {
		t.Fatalf("add edge: %d %s", resp.StatusCode, body)
	}
	resp, body = do(t, http.MethodPost, base+"/board/edges", `{"id":"e2","fromNode":"a","toNode":"zzz"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity || decodeError(t, body).Code != cerrors.ErrCodeDanglingEndpoint {
		t.Errorf("dangling edge: %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodGet, base+"/board", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	want := `{"nodes":[` + nodeA + `,` + nodeB + `],"edges":[` + edge + `]}`
	if body != want {
		t.Errorf("stored =\n%s\nwant\n%s", body, want)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Error("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, base+"/board", nil)
	req.Header.Set("If-None-Match", etag)
	cached, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	cached.Body.Close()
	if cached.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", cached.StatusCode)
	}

	_, body = do(t, http.MethodGet, base, "")
	var list ListResponse
	if err := json.Unmarshal([]byte(body), &list); err != nil || len(list.Canvases) != 1 || list.Canvases[0] != "board" {
		t.Errorf("list = %s", body)
	}

	resp, _ = do(t, http.MethodDelete, base+"/board", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodPost, base+"/board/nodes", nodeA)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("add node to deleted canvas status = %d", resp.StatusCode)
	}
}

func TestPutCanvasRejects(t *testing.T) {
	srv, s := newTestServer(t, Options{})
	base := srv.URL + "/api/canvases"

	resp, body := do(t, http.MethodPut, base+"/.hidden", doc)
	if resp.StatusCode != http.StatusBadRequest || decodeError(t, body).Code != cerrors.ErrCodeInvalidName {
		t.Errorf("bad name: %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodPut, base+"/board", `{"nodes":[{"id":"a"}]}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid doc: %d %s", resp.StatusCode, body)
	}
	if names, _ := s.List(context.Background()); len(names) != 0 {
		t.Errorf("invalid documents must not be stored: %v", names)
	}
}

type countingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests, responses int
}

func (h *countingHTTPHooks) OnRequest(context.Context, string, string) { h.requests++ }
func (h *countingHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {
	h.responses++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &countingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	h := New(store.NewMemoryStore(), Options{}, log.New(io.Discard)).Handler()
	for _, path := range []string{"/health", "/api/canvases"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rec.Code)
		}
	}
	if hooks.requests != 2 || hooks.responses != 2 {
		t.Errorf("hooks = %+v", *hooks)
	}
}

func TestRunShutsDown(t *testing.T) {
	s := New(store.NewMemoryStore(), Options{}, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, config.Server{Addr: "127.0.0.1:0"})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
