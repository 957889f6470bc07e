// Package server implements the jsoncanvas HTTP API.
//
// The API validates and formats documents sent in request bodies, and
// manages named canvases in a [store.Store]:
//
//	GET    /health
//	POST   /api/validate
//	POST   /api/format
//	GET    /api/canvases
//	GET    /api/canvases/{name}
//	PUT    /api/canvases/{name}
//	DELETE /api/canvases/{name}
//	POST   /api/canvases/{name}/nodes
//	POST   /api/canvases/{name}/edges
//
// Errors are returned as {"error":{"code":"...","message":"..."}} with the
// codes of pkg/errors.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	"github.com/matzehuels/jsoncanvas/pkg/config"
	"github.com/matzehuels/jsoncanvas/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 16 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Options configures request handling.
type Options struct {
	Decode canvas.DecodeOptions
	Indent string // indent for GET responses and /api/format without ?indent
}

// Server holds the HTTP handler dependencies.
type Server struct {
	store  store.Store
	opts   Options
	logger *log.Logger

	// mu serializes read-modify-write cycles on stored canvases.
	mu sync.Mutex
}

// New creates an API server backed by s.
func New(s store.Store, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: s, opts: opts, logger: logger}
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.Validate)
		r.Post("/format", s.Format)

		r.Get("/canvases", s.ListCanvases)
		r.Route("/canvases/{name}", func(r chi.Router) {
			r.Get("/", s.GetCanvas)
			r.Put("/", s.PutCanvas)
			r.Delete("/", s.DeleteCanvas)
			r.Post("/nodes", s.AddNode)
			r.Post("/edges", s.AddEdge)
		})
	})

	return r
}

// Run serves the API on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, cfg config.Server) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
