// Package pkg provides the libraries behind the jsoncanvas tool.
//
// # Overview
//
// JSON Canvas is an open file format for infinite-canvas documents: a
// ".canvas" file holds a flat list of positioned nodes (text, file, link and
// group) and the edges that connect them. The pkg directory is organized
// into these areas:
//
//  1. [canvas] - The data model and the JSON codec
//  2. [io] - Reading and writing documents from files and streams
//  3. [store] - Persisting canvases by name (file, memory, Redis, MongoDB)
//  4. [config] - TOML configuration
//  5. [errors] - Machine-readable error codes and input validation
//  6. [observability] - Hooks for logging and metrics
//
// # Architecture
//
// The typical data flow:
//
//	.canvas file / HTTP body / store entry
//	         ↓
//	    [io] or [store] (read bytes, report hooks)
//	         ↓
//	    [canvas] package (decode, validate, edit, encode)
//	         ↓
//	    canonical JSON
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/jsoncanvas/pkg/canvas"
//	    canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
//	)
//
//	c, err := canvasio.ImportFile(ctx, "board.canvas", canvas.DecodeOptions{})
//	if err != nil {
//	    return err
//	}
//	a := canvas.NewTextNode(canvas.NewNodeID(), 0, 0, 250, 60, "Hello")
//	if err := c.AddNode(a); err != nil {
//	    return err
//	}
//	return canvasio.ExportFile(ctx, c, "board.canvas", "\t")
//
// # Error Handling
//
// The canvas package returns sentinel errors wrapped in *canvas.FieldError,
// *canvas.IDError and *canvas.ParseError; use errors.Is and errors.As.
// canvas.ErrorCode maps any of them to a code from [errors], which the CLI
// and the HTTP API report.
//
// [canvas]: github.com/matzehuels/jsoncanvas/pkg/canvas
// [io]: github.com/matzehuels/jsoncanvas/pkg/io
// [store]: github.com/matzehuels/jsoncanvas/pkg/store
// [config]: github.com/matzehuels/jsoncanvas/pkg/config
// [errors]: github.com/matzehuels/jsoncanvas/pkg/errors
// [observability]: github.com/matzehuels/jsoncanvas/pkg/observability
package pkg
