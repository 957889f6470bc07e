package canvas

type edgeWire struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide Side   `json:"fromSide,omitempty"`
	FromEnd  End    `json:"fromEnd,omitempty"`
	ToNode   string `json:"toNode"`
	ToSide   Side   `json:"toSide,omitempty"`
	ToEnd    End    `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`
}

var allowedEdgeKeys = keySet(
	"id", "fromNode", "fromSide", "fromEnd",
	"toNode", "toSide", "toEnd", "color", "label",
)

// MarshalJSON implements json.Marshaler. Unset optional fields are omitted.
func (e *Edge) MarshalJSON() ([]byte, error) {
	if err := validateEdge(e); err != nil {
		return nil, err
	}
	return marshal(edgeWire{
		ID:       e.ID.String(),
		FromNode: e.FromNode.String(),
		FromSide: e.FromSide,
		FromEnd:  e.FromEnd,
		ToNode:   e.ToNode.String(),
		ToSide:   e.ToSide,
		ToEnd:    e.ToEnd,
		Color:    e.Color.String(),
		Label:    e.Label,
	})
}

// UnmarshalJSON implements json.Unmarshaler with default [DecodeOptions].
func (e *Edge) UnmarshalJSON(data []byte) error {
	dec, err := decodeEdge(data, DecodeOptions{})
	if err != nil {
		return err
	}
	*e = *dec
	return nil
}

// UnmarshalEdgeWith decodes a single edge object. Endpoints are not
// checked; that is up to [Canvas.AddEdge].
func UnmarshalEdgeWith(data []byte, opts DecodeOptions) (*Edge, error) {
	return decodeEdge(data, opts)
}

func decodeEdge(data []byte, opts DecodeOptions) (*Edge, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	if !opts.AllowUnknownFields {
		if err := obj.checkKeys(allowedEdgeKeys); err != nil {
			return nil, err
		}
	}

	var e Edge
	raw, err := obj.requireString("id")
	if err != nil {
		return nil, err
	}
	if e.ID, err = ParseEdgeID(raw); err != nil {
		return nil, &FieldError{Field: "id", Err: err}
	}
	if e.FromNode, err = endpoint(obj, "fromNode"); err != nil {
		return nil, err
	}
	if e.ToNode, err = endpoint(obj, "toNode"); err != nil {
		return nil, err
	}

	if s, ok, err := obj.optString("fromSide"); err != nil {
		return nil, err
	} else if ok && s != "" {
		if e.FromSide, err = ParseSide("fromSide", s); err != nil {
			return nil, err
		}
	}
	if s, ok, err := obj.optString("toSide"); err != nil {
		return nil, err
	} else if ok && s != "" {
		if e.ToSide, err = ParseSide("toSide", s); err != nil {
			return nil, err
		}
	}
	if s, ok, err := obj.optString("fromEnd"); err != nil {
		return nil, err
	} else if ok && s != "" {
		if e.FromEnd, err = ParseEnd("fromEnd", s); err != nil {
			return nil, err
		}
	}
	if s, ok, err := obj.optString("toEnd"); err != nil {
		return nil, err
	} else if ok && s != "" {
		if e.ToEnd, err = ParseEnd("toEnd", s); err != nil {
			return nil, err
		}
	}

	if e.Color, err = obj.color(); err != nil {
		return nil, err
	}
	if e.Label, _, err = obj.optString("label"); err != nil {
		return nil, err
	}
	return &e, nil
}

func endpoint(obj object, key string) (NodeID, error) {
	raw, err := obj.requireString(key)
	if err != nil {
		return NodeID{}, err
	}
	id, err := ParseNodeID(raw)
	if err != nil {
		return NodeID{}, &FieldError{Field: key, Err: err}
	}
	return id, nil
}
