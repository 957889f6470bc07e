package canvas

import (
	"errors"
	"fmt"

	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

var (
	// ErrEmptyID is returned when an identifier is the empty string, or when
	// a zero NodeID/EdgeID is handed to the canvas.
	ErrEmptyID = errors.New("identifier must not be empty")

	// ErrDuplicateNodeID is returned by [Canvas.AddNode] and by parsing when
	// a node with the same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [Canvas.AddEdge] and by parsing when
	// an edge with the same ID already exists.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrDanglingEndpoint is returned by [Canvas.AddEdge] and [Canvas.Validate]
	// when an edge references a node the canvas does not contain.
	ErrDanglingEndpoint = errors.New("edge endpoint references unknown node")

	// ErrMissingField is returned when a required wire field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownField is returned when a wire object carries a key that does
	// not belong to it.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownEnumValue is returned for node types, sides, ends and
	// background styles outside their fixed vocabularies.
	ErrUnknownEnumValue = errors.New("unrecognized enum value")

	// ErrMalformedColor is returned for empty color strings and for hex
	// colors with bad digits or length.
	ErrMalformedColor = errors.New("malformed color")

	// ErrMalformedURL is returned when a link node URL is not an absolute URL.
	ErrMalformedURL = errors.New("malformed URL")

	// ErrInvalidValue is returned when a field holds a value of the wrong JSON
	// type or out of range (a negative width, a fractional coordinate).
	ErrInvalidValue = errors.New("invalid field value")

	// ErrZeroSize is returned for nodes with zero width or height when
	// [DecodeOptions.RejectZeroSize] is set.
	ErrZeroSize = errors.New("node has zero width or height")
)

// IDError reports a failure tied to a specific node or edge identifier.
type IDError struct {
	ID  string
	Err error
}

func (e *IDError) Error() string { return fmt.Sprintf("%v: %q", e.Err, e.ID) }

func (e *IDError) Unwrap() error { return e.Err }

// FieldError reports a failure tied to a single wire field.
// Value holds the offending raw value when there is one.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("field %q: %v: %s", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParseError wraps any failure encountered while decoding a whole document.
// Path locates the failing element, e.g. "nodes[2]" or "edges[0]"; it is
// empty for document-level failures.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse canvas: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse canvas: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// codes maps sentinels onto machine-readable codes, most specific first.
var codes = []struct {
	err  error
	code cerrors.Code
}{
	{ErrEmptyID, cerrors.ErrCodeEmptyIdentifier},
	{ErrDuplicateNodeID, cerrors.ErrCodeDuplicateNodeID},
	{ErrDuplicateEdgeID, cerrors.ErrCodeDuplicateEdgeID},
	{ErrDanglingEndpoint, cerrors.ErrCodeDanglingEndpoint},
	{ErrMissingField, cerrors.ErrCodeMissingField},
	{ErrUnknownField, cerrors.ErrCodeUnknownField},
	{ErrUnknownEnumValue, cerrors.ErrCodeUnknownEnumValue},
	{ErrMalformedColor, cerrors.ErrCodeMalformedColor},
	{ErrMalformedURL, cerrors.ErrCodeMalformedURL},
	{ErrInvalidValue, cerrors.ErrCodeInvalidValue},
	{ErrZeroSize, cerrors.ErrCodeZeroSize},
}

// ErrorCode returns the machine-readable code for err. Errors from this
// package map to their taxonomy code; other *ParseError chains (malformed
// JSON) map to PARSE_ERROR; anything else falls back to the code carried by
// a pkg/errors value, or INTERNAL_ERROR.
func ErrorCode(err error) cerrors.Code {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return cerrors.ErrCodeParse
	}
	if code := cerrors.GetCode(err); code != "" {
		return code
	}
	return cerrors.ErrCodeInternal
}
