package io

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// StdinSource is the source name reported for documents read from stdin.
const StdinSource = "-"

// ReadCanvas reads a whole document from r and decodes it with opts.
//
// ReadCanvas returns an error if r fails, or the *canvas.ParseError from
// decoding. The returned canvas is independent of r. ReadCanvas does not
// close r.
func ReadCanvas(ctx context.Context, r io.Reader, opts canvas.DecodeOptions) (*canvas.Canvas, error) {
	return readCanvas(ctx, "reader", r, opts)
}

// ImportFile reads and decodes the canvas file at path. A path of "-" reads
// from stdin.
//
// ImportFile returns the same decoding errors as [ReadCanvas]; errors from
// opening the file are wrapped with the path.
func ImportFile(ctx context.Context, path string, opts canvas.DecodeOptions) (*canvas.Canvas, error) {
	if path == StdinSource {
		return readCanvas(ctx, StdinSource, os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCanvas(ctx, path, f, opts)
}

func readCanvas(ctx context.Context, source string, r io.Reader, opts canvas.DecodeOptions) (*canvas.Canvas, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		err = fmt.Errorf("read %s: %w", source, err)
		observability.Codec().OnDecode(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}
	c, err := canvas.ParseWith(data, opts)
	if err != nil {
		observability.Codec().OnDecode(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Codec().OnDecode(ctx, source, c.NodeCount(), c.EdgeCount(), time.Since(start), nil)
	return c, nil
}
