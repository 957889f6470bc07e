package io

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// Encode returns the serialized canvas followed by a newline. An empty
// indent yields the compact canonical form.
func Encode(c *canvas.Canvas, indent string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = c.Marshal()
	} else {
		data, err = c.MarshalIndent("", indent)
	}
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}

// MaxIndent is the widest indent ParseIndent accepts, in spaces.
const MaxIndent = 8

// ParseIndent turns a user-supplied indent into the string passed to
// [Encode]: "tab" is a tab, a number N is N spaces, and "0" or "" is the
// compact form.
func ParseIndent(s string) (string, error) {
	switch s {
	case "":
		return "", nil
	case "tab":
		return "\t", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxIndent {
		return "", cerrors.New(cerrors.ErrCodeInvalidInput, "indent must be 0-%d or \"tab\", got %q", MaxIndent, s)
	}
	return strings.Repeat(" ", n), nil
}

// WriteCanvas encodes c and writes it to w. See [Encode].
func WriteCanvas(ctx context.Context, w io.Writer, c *canvas.Canvas, indent string) error {
	return writeCanvas(ctx, "writer", w, c, indent)
}

// ExportFile writes c to the file at path, replacing it atomically: the
// document goes to a temporary file in the same directory that is renamed
// over path once fully written. A path of "-" writes to stdout.
func ExportFile(ctx context.Context, c *canvas.Canvas, path, indent string) error {
	if path == StdinSource {
		return writeCanvas(ctx, StdinSource, os.Stdout, c, indent)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := writeCanvas(ctx, path, f, c, indent); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func writeCanvas(ctx context.Context, target string, w io.Writer, c *canvas.Canvas, indent string) error {
	start := time.Now()
	data, err := Encode(c, indent)
	if err == nil {
		if _, werr := w.Write(data); werr != nil {
			err = fmt.Errorf("write %s: %w", target, werr)
		}
	}
	observability.Codec().OnEncode(ctx, target, len(data), time.Since(start), err)
	return err
}
