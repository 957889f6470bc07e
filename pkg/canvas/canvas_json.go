package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var allowedDocumentKeys = keySet("nodes", "edges")

// Marshal encodes the canvas as {"nodes":[...],"edges":[...]}. Each array is
// omitted when empty, so an empty canvas encodes as {}. Elements appear in
// insertion order and HTML characters are not escaped.
func (c *Canvas) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if len(c.nodeOrder) > 0 {
		buf.WriteString(`"nodes":[`)
		for i, id := range c.nodeOrder {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalNode(c.nodes[id])
			if err != nil {
				return nil, fmt.Errorf("encode node %q: %w", id, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}
	if len(c.edgeOrder) > 0 {
		if len(c.nodeOrder) > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"edges":[`)
		for i, id := range c.edgeOrder {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := c.edges[id].MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("encode edge %q: %w", id, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent is like [Canvas.Marshal] but applies json.Indent with the
// given prefix and indent.
func (c *Canvas) MarshalIndent(prefix, indent string) ([]byte, error) {
	b, err := c.Marshal()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler. Note that encoding/json re-escapes
// HTML characters in the result; use [Canvas.Marshal] to avoid that.
func (c *Canvas) MarshalJSON() ([]byte, error) { return c.Marshal() }

// UnmarshalJSON implements json.Unmarshaler using the default
// [DecodeOptions]. It replaces the receiver's contents.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	parsed, err := ParseWith(data, DecodeOptions{})
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// Parse decodes a canvas document with the default [DecodeOptions]. Edge
// endpoints are not checked against the node set; see [ParseWith].
func Parse(data []byte) (*Canvas, error) {
	return ParseWith(data, DecodeOptions{})
}

// ParseWith decodes a canvas document. Any failure aborts the whole
// document and is returned as a *ParseError whose Path locates the
// offending element, e.g. "nodes[3]". Duplicate node or edge IDs within the
// document are always rejected, as are objects that repeat a key.
func ParseWith(data []byte, opts DecodeOptions) (*Canvas, error) {
	var doc object
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: expected object, got null", ErrInvalidValue)}
	}
	if err := checkDuplicateKeys(data); err != nil {
		return nil, &ParseError{Err: err}
	}
	if !opts.AllowUnknownFields {
		if err := doc.checkKeys(allowedDocumentKeys); err != nil {
			return nil, &ParseError{Err: err}
		}
	}

	nodes, err := doc.array("nodes")
	if err != nil {
		return nil, &ParseError{Path: "nodes", Err: err}
	}
	edges, err := doc.array("edges")
	if err != nil {
		return nil, &ParseError{Path: "edges", Err: err}
	}

	c := New()
	for i, raw := range nodes {
		n, err := decodeNode(raw, opts)
		if err == nil {
			err = c.AddNode(n)
		}
		if err != nil {
			return nil, &ParseError{Path: fmt.Sprintf("nodes[%d]", i), Err: err}
		}
	}
	for i, raw := range edges {
		e, err := decodeEdge(raw, opts)
		if err == nil {
			err = c.parseEdge(e, opts.ValidateReferences)
		}
		if err != nil {
			return nil, &ParseError{Path: fmt.Sprintf("edges[%d]", i), Err: err}
		}
	}
	return c, nil
}

func (c *Canvas) parseEdge(e *Edge, strict bool) error {
	if strict {
		return c.AddEdge(e)
	}
	if _, exists := c.edges[e.ID]; exists {
		return &IDError{ID: e.ID.String(), Err: ErrDuplicateEdgeID}
	}
	c.insertEdge(e)
	return nil
}

// array returns the raw elements of an optional array field.
func (o object) array(key string) ([]json.RawMessage, error) {
	v, ok := o.raw(key)
	if !ok {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(v, &elems); err != nil {
		return nil, &FieldError{Field: key, Err: ErrInvalidValue}
	}
	return elems, nil
}
