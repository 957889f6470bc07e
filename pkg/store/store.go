// Package store persists canvas documents by name.
//
// A [Store] maps canvas names to serialized documents. Backends:
//   - file: one <name>.canvas file per canvas in a directory (CLI default)
//   - memory: an in-process map, for tests and ephemeral servers
//   - redis: one string key per canvas under a common prefix
//   - mongo: one document per canvas in a collection
//
// Stores deal in bytes; [Save] and [Load] add the canvas codec on top:
//
//	s, err := store.Open(ctx, cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := store.Save(ctx, s, "roadmap", c); err != nil {
//	    return err
//	}
//	c, err = store.Load(ctx, s, "roadmap", canvas.DecodeOptions{})
//
// Canvas names are validated with [errors.ValidateCanvasName]; they are used
// verbatim as file names and keys.
//
// All backends are safe for concurrent use.
//
// [errors.ValidateCanvasName]: github.com/matzehuels/jsoncanvas/pkg/errors.ValidateCanvasName
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// ErrNotFound is returned by [Store.Get] when no canvas has the given name.
var ErrNotFound = errors.New("canvas not found")

// Store is a named collection of serialized canvases.
type Store interface {
	// Get returns the stored document, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put stores data under name, replacing any previous document.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes name. Deleting a missing canvas is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all stored names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Save encodes c in its compact canonical form and stores it under name.
func Save(ctx context.Context, s Store, name string, c *canvas.Canvas) error {
	start := time.Now()
	data, err := c.Marshal()
	observability.Codec().OnEncode(ctx, name, len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.Put(ctx, name, data)
}

// Load fetches name and decodes it with opts. A missing canvas yields
// ErrNotFound; decoding failures are returned as *canvas.ParseError.
func Load(ctx context.Context, s Store, name string, opts canvas.DecodeOptions) (*canvas.Canvas, error) {
	data, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	c, err := canvas.ParseWith(data, opts)
	if err != nil {
		observability.Codec().OnDecode(ctx, name, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	observability.Codec().OnDecode(ctx, name, c.NodeCount(), c.EdgeCount(), time.Since(start), nil)
	return c, nil
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func checkName(name string) error {
	return cerrors.ValidateCanvasName(name)
}

// instrumented reports every operation of a backend to the store hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so that its operations are reported to
// [observability.StoreHooks] under the given backend name.
func Instrument(backend string, s Store) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := s.Store.Get(ctx, name)
	observability.Store().OnGet(ctx, s.backend, name, err == nil, time.Since(start))
	return data, err
}

func (s *instrumented) Put(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	err := s.Store.Put(ctx, name, data)
	observability.Store().OnPut(ctx, s.backend, name, len(data), time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, name string) error {
	err := s.Store.Delete(ctx, name)
	observability.Store().OnDelete(ctx, s.backend, name, err)
	return err
}
