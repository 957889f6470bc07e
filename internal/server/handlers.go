package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsoncanvas/pkg/buildinfo"
	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
	"github.com/matzehuels/jsoncanvas/pkg/store"
)

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SummaryResponse describes a valid or stored canvas.
type SummaryResponse struct {
	Valid bool   `json:"valid"`
	Name  string `json:"name,omitempty"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

// ListResponse is the response for GET /api/canvases.
type ListResponse struct {
	Canvases []string `json:"canvases"`
}

// Health handles GET /health
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// Validate handles POST /api/validate
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	c, err := s.parseBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Valid: true, Nodes: c.NodeCount(), Edges: c.EdgeCount()})
}

// Format handles POST /api/format
// Supports ?indent=N (spaces) or ?indent=tab; ?indent=0 forces compact output.
func (s *Server) Format(w http.ResponseWriter, r *http.Request) {
	indent, err := s.indent(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.parseBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeCanvas(w, r, c, indent)
}

// ListCanvases handles GET /api/canvases
func (s *Server) ListCanvases(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Canvases: names})
}

// GetCanvas handles GET /api/canvases/{name}
// The stored document is returned as is, with its SHA-256 as ETag.
func (s *Server) GetCanvas(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	etag := `"` + store.Hash(data) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// PutCanvas handles PUT /api/canvases/{name}
// The body is validated and stored in canonical form.
func (s *Server) PutCanvas(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := cerrors.ValidateCanvasName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.parseBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	err = store.Save(r.Context(), s.store, name, c)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Valid: true, Name: name, Nodes: c.NodeCount(), Edges: c.EdgeCount()})
}

// DeleteCanvas handles DELETE /api/canvases/{name}
func (s *Server) DeleteCanvas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.store.Delete(r.Context(), chi.URLParam(r, "name"))
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddNode handles POST /api/canvases/{name}/nodes
// The body is a single node object; the node is appended to the stored canvas.
func (s *Server) AddNode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := canvas.UnmarshalNodeWith(body, s.opts.Decode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = s.update(r, func(c *canvas.Canvas) error { return c.AddNode(n) })
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := canvas.MarshalNode(n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(out)
}

// AddEdge handles POST /api/canvases/{name}/edges
// Both endpoints must already exist in the stored canvas.
func (s *Server) AddEdge(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := canvas.UnmarshalEdgeWith(body, s.opts.Decode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = s.update(r, func(c *canvas.Canvas) error { return c.AddEdge(e) })
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := e.MarshalJSON()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(out)
}

// update loads the canvas named in the URL, applies fn and stores the
// result, holding s.mu throughout.
func (s *Server) update(r *http.Request, fn func(*canvas.Canvas) error) error {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := store.Load(ctx, s.store, name, s.opts.Decode)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return store.Save(ctx, s.store, name, c)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*canvas.Canvas, error) {
	data, err := s.readBody(w, r)
	if err != nil {
		return nil, err
	}
	return canvas.ParseWith(data, s.opts.Decode)
}

// indent resolves the ?indent query parameter.
func (s *Server) indent(r *http.Request) (string, error) {
	q := r.URL.Query()
	if !q.Has("indent") {
		return s.opts.Indent, nil
	}
	return canvasio.ParseIndent(q.Get("indent"))
}

func (s *Server) writeCanvas(w http.ResponseWriter, r *http.Request, c *canvas.Canvas, indent string) {
	data, err := canvasio.Encode(c, indent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
