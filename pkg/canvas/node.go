package canvas

import (
	"fmt"
	"net/url"
)

// NodeType is the wire discriminant of a node.
type NodeType string

// Node types.
const (
	TypeText  NodeType = "text"
	TypeFile  NodeType = "file"
	TypeLink  NodeType = "link"
	TypeGroup NodeType = "group"
)

// ParseNodeType validates a wire type tag.
func ParseNodeType(s string) (NodeType, error) {
	switch t := NodeType(s); t {
	case TypeText, TypeFile, TypeLink, TypeGroup:
		return t, nil
	}
	return "", &FieldError{Field: "type", Value: s, Err: ErrUnknownEnumValue}
}

// GenericNode holds the position, size and color every node kind shares.
// It is embedded by value in each variant; on its own it is not a [Node].
type GenericNode struct {
	ID     NodeID
	X      int  // pixels, may be negative
	Y      int  // pixels, may be negative
	Width  uint // pixels
	Height uint // pixels
	Color  Color
}

// Generic returns the shared record. Every variant gets this method through
// embedding, which is what makes it a [Node] together with Type.
func (g *GenericNode) Generic() *GenericNode { return g }

// SetPosition moves the node.
func (g *GenericNode) SetPosition(x, y int) {
	g.X, g.Y = x, y
}

// SetSize resizes the node.
func (g *GenericNode) SetSize(width, height uint) {
	g.Width, g.Height = width, height
}

// Node is one of *TextNode, *FileNode, *LinkNode or *GroupNode.
type Node interface {
	Generic() *GenericNode
	Type() NodeType
}

// TextNode holds plain text (usually Markdown).
type TextNode struct {
	GenericNode
	Text string
}

// FileNode references a file, optionally narrowed to a heading or block
// inside it by Subpath (which starts with '#').
type FileNode struct {
	GenericNode
	File    string
	Subpath string
}

// LinkNode references an external URL.
type LinkNode struct {
	GenericNode
	URL *url.URL
}

// GroupNode visually groups other nodes, with an optional label and
// background image.
type GroupNode struct {
	GenericNode
	Label      string
	Background *Background
}

// Background is the image painted behind a group.
type Background struct {
	Image string
	Style BackgroundStyle // zero means the renderer default
}

// BackgroundStyle controls how a group background image is laid out.
type BackgroundStyle string

// Background styles.
const (
	BackgroundCover  BackgroundStyle = "cover"
	BackgroundRatio  BackgroundStyle = "ratio"
	BackgroundRepeat BackgroundStyle = "repeat"
)

// ParseBackgroundStyle validates a wire background style.
func ParseBackgroundStyle(s string) (BackgroundStyle, error) {
	switch st := BackgroundStyle(s); st {
	case BackgroundCover, BackgroundRatio, BackgroundRepeat:
		return st, nil
	}
	return "", &FieldError{Field: "backgroundStyle", Value: s, Err: ErrUnknownEnumValue}
}

func (*TextNode) Type() NodeType  { return TypeText }
func (*FileNode) Type() NodeType  { return TypeFile }
func (*LinkNode) Type() NodeType  { return TypeLink }
func (*GroupNode) Type() NodeType { return TypeGroup }

// NewTextNode creates a text node.
func NewTextNode(id NodeID, x, y int, width, height uint, text string) *TextNode {
	return &TextNode{GenericNode: generic(id, x, y, width, height), Text: text}
}

// NewFileNode creates a file node without a subpath.
func NewFileNode(id NodeID, x, y int, width, height uint, file string) *FileNode {
	return &FileNode{GenericNode: generic(id, x, y, width, height), File: file}
}

// NewLinkNode creates a link node. u must be absolute; see [ParseURL].
func NewLinkNode(id NodeID, x, y int, width, height uint, u *url.URL) *LinkNode {
	return &LinkNode{GenericNode: generic(id, x, y, width, height), URL: u}
}

// NewGroupNode creates an unlabeled group without background.
func NewGroupNode(id NodeID, x, y int, width, height uint) *GroupNode {
	return &GroupNode{GenericNode: generic(id, x, y, width, height)}
}

func generic(id NodeID, x, y int, width, height uint) GenericNode {
	return GenericNode{ID: id, X: x, Y: y, Width: width, Height: height}
}

// ParseURL parses raw as an absolute URL, as required for link nodes.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil, &FieldError{Field: "url", Value: raw, Err: ErrMalformedURL}
	}
	return u, nil
}

// validateNode checks the invariants a node must satisfy before it can be
// stored or encoded.
func validateNode(n Node) error {
	if isNilNode(n) {
		return fmt.Errorf("nil node: %w", ErrInvalidValue)
	}
	if n.Generic().ID.IsZero() {
		return &FieldError{Field: "id", Err: ErrEmptyID}
	}
	if err := validateColor(n.Generic().Color); err != nil {
		return err
	}
	switch v := n.(type) {
	case *TextNode, *FileNode:
	case *LinkNode:
		if v.URL == nil {
			return &FieldError{Field: "url", Err: ErrMissingField}
		}
		if !v.URL.IsAbs() {
			return &FieldError{Field: "url", Value: v.URL.String(), Err: ErrMalformedURL}
		}
	case *GroupNode:
		if v.Background != nil && v.Background.Image == "" {
			return &FieldError{Field: "background", Err: ErrMissingField}
		}
		if v.Background != nil && v.Background.Style != "" {
			if _, err := ParseBackgroundStyle(string(v.Background.Style)); err != nil {
				return err
			}
		}
	default:
		return &FieldError{Field: "type", Value: string(n.Type()), Err: ErrUnknownEnumValue}
	}
	return nil
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *TextNode:
		return v == nil
	case *FileNode:
		return v == nil
	case *LinkNode:
		return v == nil
	case *GroupNode:
		return v == nil
	}
	return false
}
