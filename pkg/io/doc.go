// Package io reads and writes JSON Canvas documents from streams and files.
//
// # Overview
//
// The codec itself lives in [canvas]; this package adds the plumbing around
// it: reading a whole document from an io.Reader or a file, writing the
// canonical (or indented) form back out, and reporting every decode and
// encode to the registered [observability.CodecHooks].
//
// # Import
//
// Use [ImportFile] to read a canvas from a file path, or [ReadCanvas] to read
// from any io.Reader:
//
//	c, err := io.ImportFile(ctx, "board.canvas", canvas.DecodeOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding failures are returned unchanged from [canvas.ParseWith], so
// errors.Is and errors.As work against the canvas sentinels and error types.
//
// # Export
//
// Use [ExportFile] to write a canvas to a file, or [WriteCanvas] to write to
// any io.Writer:
//
//	err := io.ExportFile(ctx, c, "board.canvas", "\t")
//
// An empty indent writes the compact canonical form. Output always ends
// with a newline.
//
// # Concurrency
//
// All functions are safe to call concurrently as long as the same canvas is
// not modified while it is being written.
//
// [canvas]: github.com/matzehuels/jsoncanvas/pkg/canvas
// [observability.CodecHooks]: github.com/matzehuels/jsoncanvas/pkg/observability.CodecHooks
package io
