// Package cli implements the jsoncanvas command-line interface.
//
// This package provides commands for validating, formatting and editing
// JSON Canvas documents, for moving canvases in and out of a store, and for
// running the HTTP API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check one or more canvas files
//   - fmt: Rewrite a canvas in canonical form
//   - new, node, edge: Create canvases and add or remove elements
//   - inspect: Summarize a canvas
//   - store: Put, get, list and delete canvases in the configured store
//   - serve: Run the HTTP API
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; codec and store events reach the logger
// through observability hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
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
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Validated 3 files (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards codec and store events to the logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnDecode(_ context.Context, source string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Decode failed", "source", source, "took", d, "err", err)
		return
	}
	h.logger.Debug("Decoded", "source", source, "nodes", nodes, "edges", edges, "took", d)
}

func (h logHooks) OnEncode(_ context.Context, target string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Encode failed", "target", target, "err", err)
		return
	}
	h.logger.Debug("Encoded", "target", target, "bytes", size, "took", d)
}

func (h logHooks) OnGet(_ context.Context, backend, name string, found bool, d time.Duration) {
	h.logger.Debug("Store get", "backend", backend, "name", name, "found", found, "took", d)
}

func (h logHooks) OnPut(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("Store put failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("Store put", "backend", backend, "name", name, "bytes", size, "took", d)
}

func (h logHooks) OnDelete(_ context.Context, backend, name string, err error) {
	if err != nil {
		h.logger.Warn("Store delete failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("Store delete", "backend", backend, "name", name)
}
