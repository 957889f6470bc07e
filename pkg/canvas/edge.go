package canvas

// Side is the side of a node's bounding box an edge endpoint attaches to.
// The zero value means unspecified.
type Side string

// Sides.
const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// ParseSide validates a wire side token. field names the key being decoded
// and is used in the returned error.
func ParseSide(field, s string) (Side, error) {
	switch sd := Side(s); sd {
	case SideTop, SideRight, SideBottom, SideLeft:
		return sd, nil
	}
	return "", &FieldError{Field: field, Value: s, Err: ErrUnknownEnumValue}
}

// End is the decoration drawn at an edge endpoint. The zero value means
// unspecified; renderers draw no arrow at the start and an arrow at the end.
type End string

// Ends.
const (
	EndNone  End = "none"
	EndArrow End = "arrow"
)

// ParseEnd validates a wire end token. See [ParseSide].
func ParseEnd(field, s string) (End, error) {
	switch e := End(s); e {
	case EndNone, EndArrow:
		return e, nil
	}
	return "", &FieldError{Field: field, Value: s, Err: ErrUnknownEnumValue}
}

// Edge is a directed connection between two nodes. Endpoints are node IDs,
// never pointers; whether they exist is checked by the owning [Canvas].
type Edge struct {
	ID       EdgeID
	FromNode NodeID
	FromSide Side
	FromEnd  End
	ToNode   NodeID
	ToSide   Side
	ToEnd    End
	Color    Color
	Label    string
}

// NewEdge creates an edge from one node to another with no styling.
func NewEdge(id EdgeID, from, to NodeID) *Edge {
	return &Edge{ID: id, FromNode: from, ToNode: to}
}

// SetFrom sets the source endpoint.
func (e *Edge) SetFrom(node NodeID, side Side, end End) {
	e.FromNode, e.FromSide, e.FromEnd = node, side, end
}

// SetTo sets the target endpoint.
func (e *Edge) SetTo(node NodeID, side Side, end End) {
	e.ToNode, e.ToSide, e.ToEnd = node, side, end
}

// Touches reports whether either endpoint is id.
func (e *Edge) Touches(id NodeID) bool {
	return e.FromNode == id || e.ToNode == id
}

func validateEdge(e *Edge) error {
	if e == nil {
		return &FieldError{Field: "edge", Err: ErrInvalidValue}
	}
	if e.ID.IsZero() {
		return &FieldError{Field: "id", Err: ErrEmptyID}
	}
	if e.FromNode.IsZero() {
		return &FieldError{Field: "fromNode", Err: ErrEmptyID}
	}
	if e.ToNode.IsZero() {
		return &FieldError{Field: "toNode", Err: ErrEmptyID}
	}
	if err := validateColor(e.Color); err != nil {
		return err
	}
	checks := []struct {
		field string
		value string
		parse func(string, string) error
	}{
		{"fromSide", string(e.FromSide), sideCheck},
		{"toSide", string(e.ToSide), sideCheck},
		{"fromEnd", string(e.FromEnd), endCheck},
		{"toEnd", string(e.ToEnd), endCheck},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if err := c.parse(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

func sideCheck(field, s string) error {
	_, err := ParseSide(field, s)
	return err
}

func endCheck(field, s string) error {
	_, err := ParseEnd(field, s)
	return err
}
