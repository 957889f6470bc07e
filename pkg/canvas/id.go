package canvas

import (
	"strings"

	"github.com/google/uuid"
)

// NodeID identifies a node within a canvas. The zero value is the empty ID
// and is rejected wherever an ID is consumed; use [ParseNodeID] or
// [NewNodeID] to obtain a valid one.
type NodeID struct {
	value string
}

// EdgeID identifies an edge within a canvas. See [NodeID].
type EdgeID struct {
	value string
}

// ParseNodeID validates s as a node identifier. Only the empty string is
// rejected; s is kept byte-for-byte, without trimming or case folding.
func ParseNodeID(s string) (NodeID, error) {
	if s == "" {
		return NodeID{}, ErrEmptyID
	}
	return NodeID{value: s}, nil
}

// ParseEdgeID validates s as an edge identifier. See [ParseNodeID].
func ParseEdgeID(s string) (EdgeID, error) {
	if s == "" {
		return EdgeID{}, ErrEmptyID
	}
	return EdgeID{value: s}, nil
}

// MustNodeID is like [ParseNodeID] but panics on the empty string.
func MustNodeID(s string) NodeID {
	id, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// MustEdgeID is like [ParseEdgeID] but panics on the empty string.
func MustEdgeID(s string) EdgeID {
	id, err := ParseEdgeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewNodeID returns a random 16-hex-digit node identifier.
func NewNodeID() NodeID { return NodeID{value: randomID()} }

// NewEdgeID returns a random 16-hex-digit edge identifier.
func NewEdgeID() EdgeID { return EdgeID{value: randomID()} }

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func (id NodeID) String() string { return id.value }
func (id EdgeID) String() string { return id.value }

// IsZero reports whether id is the empty identifier.
func (id NodeID) IsZero() bool { return id.value == "" }

// IsZero reports whether id is the empty identifier.
func (id EdgeID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id NodeID) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return nil, ErrEmptyID
	}
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(b []byte) error {
	parsed, err := ParseNodeID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id EdgeID) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return nil, ErrEmptyID
	}
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EdgeID) UnmarshalText(b []byte) error {
	parsed, err := ParseEdgeID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
