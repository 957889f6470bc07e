package canvas

// Wire structs for encoding. Field order here is the order keys appear in
// the output: shared fields, then the type tag, then variant fields.

type genericWire struct {
	ID     string   `json:"id"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  uint     `json:"width"`
	Height uint     `json:"height"`
	Color  string   `json:"color,omitempty"`
	Type   NodeType `json:"type"`
}

type textWire struct {
	genericWire
	Text string `json:"text"`
}

type fileWire struct {
	genericWire
	File    string `json:"file"`
	Subpath string `json:"subpath,omitempty"`
}

type linkWire struct {
	genericWire
	URL string `json:"url"`
}

type groupWire struct {
	genericWire
	Label           string          `json:"label,omitempty"`
	Background      string          `json:"background,omitempty"`
	BackgroundStyle BackgroundStyle `json:"backgroundStyle,omitempty"`
}

var genericKeys = []string{"id", "x", "y", "width", "height", "color", "type"}

// allowedNodeKeys lists, per variant, every key a node object may carry.
var allowedNodeKeys = map[NodeType]map[string]bool{
	TypeText:  keySet(append(genericKeys, "text")...),
	TypeFile:  keySet(append(genericKeys, "file", "subpath")...),
	TypeLink:  keySet(append(genericKeys, "url")...),
	TypeGroup: keySet(append(genericKeys, "label", "background", "backgroundStyle")...),
}

// MarshalNode encodes a single node as a flat JSON object tagged by "type".
// Absent optional fields are omitted.
func MarshalNode(n Node) ([]byte, error) {
	if err := validateNode(n); err != nil {
		return nil, err
	}
	g := n.Generic()
	gw := genericWire{
		ID:     g.ID.String(),
		X:      g.X,
		Y:      g.Y,
		Width:  g.Width,
		Height: g.Height,
		Color:  g.Color.String(),
		Type:   n.Type(),
	}

	switch v := n.(type) {
	case *TextNode:
		return marshal(textWire{genericWire: gw, Text: v.Text})
	case *FileNode:
		return marshal(fileWire{genericWire: gw, File: v.File, Subpath: v.Subpath})
	case *LinkNode:
		return marshal(linkWire{genericWire: gw, URL: v.URL.String()})
	case *GroupNode:
		w := groupWire{genericWire: gw, Label: v.Label}
		if v.Background != nil {
			w.Background = v.Background.Image
			w.BackgroundStyle = v.Background.Style
		}
		return marshal(w)
	}
	// validateNode rejects every other implementation.
	panic("unreachable")
}

// UnmarshalNode decodes a single node object with default options.
func UnmarshalNode(data []byte) (Node, error) {
	return decodeNode(data, DecodeOptions{})
}

// UnmarshalNodeWith decodes a single node object. ValidateReferences has no
// effect on a lone node.
func UnmarshalNodeWith(data []byte, opts DecodeOptions) (Node, error) {
	return decodeNode(data, opts)
}

func decodeNode(data []byte, opts DecodeOptions) (Node, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	tag, err := obj.requireString("type")
	if err != nil {
		return nil, err
	}
	typ, err := ParseNodeType(tag)
	if err != nil {
		return nil, err
	}
	if !opts.AllowUnknownFields {
		if err := obj.checkKeys(allowedNodeKeys[typ]); err != nil {
			return nil, err
		}
	}

	g, err := decodeGeneric(obj, opts)
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeText:
		text, err := obj.requireString("text")
		if err != nil {
			return nil, err
		}
		return &TextNode{GenericNode: g, Text: text}, nil

	case TypeFile:
		file, err := obj.requireString("file")
		if err != nil {
			return nil, err
		}
		subpath, _, err := obj.optString("subpath")
		if err != nil {
			return nil, err
		}
		return &FileNode{GenericNode: g, File: file, Subpath: subpath}, nil

	case TypeLink:
		raw, err := obj.requireString("url")
		if err != nil {
			return nil, err
		}
		u, err := ParseURL(raw)
		if err != nil {
			return nil, err
		}
		return &LinkNode{GenericNode: g, URL: u}, nil

	default:
		return decodeGroup(obj, g)
	}
}

func decodeGeneric(obj object, opts DecodeOptions) (GenericNode, error) {
	var g GenericNode

	raw, err := obj.requireString("id")
	if err != nil {
		return g, err
	}
	if g.ID, err = ParseNodeID(raw); err != nil {
		return g, &FieldError{Field: "id", Err: err}
	}
	if g.X, err = obj.requireInt("x"); err != nil {
		return g, err
	}
	if g.Y, err = obj.requireInt("y"); err != nil {
		return g, err
	}
	if g.Width, err = obj.requireUint("width"); err != nil {
		return g, err
	}
	if g.Height, err = obj.requireUint("height"); err != nil {
		return g, err
	}
	if opts.RejectZeroSize {
		if g.Width == 0 {
			return g, &FieldError{Field: "width", Err: ErrZeroSize}
		}
		if g.Height == 0 {
			return g, &FieldError{Field: "height", Err: ErrZeroSize}
		}
	}
	if g.Color, err = obj.color(); err != nil {
		return g, err
	}
	return g, nil
}

func decodeGroup(obj object, g GenericNode) (Node, error) {
	label, _, err := obj.optString("label")
	if err != nil {
		return nil, err
	}
	n := &GroupNode{GenericNode: g, Label: label}

	image, hasImage, err := obj.optString("background")
	if err != nil {
		return nil, err
	}
	style, hasStyle, err := obj.optString("backgroundStyle")
	if err != nil {
		return nil, err
	}
	hasImage = hasImage && image != ""
	hasStyle = hasStyle && style != ""
	if hasStyle && !hasImage {
		return nil, &FieldError{Field: "background", Err: ErrMissingField}
	}
	if hasImage {
		n.Background = &Background{Image: image}
		if hasStyle {
			if n.Background.Style, err = ParseBackgroundStyle(style); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}
