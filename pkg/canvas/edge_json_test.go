package canvas

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEdgeMarshal(t *testing.T) {
	full := NewEdge(MustEdgeID("e1"), MustNodeID("a"), MustNodeID("b"))
	full.SetFrom(MustNodeID("a"), SideRight, EndNone)
	full.SetTo(MustNodeID("b"), SideLeft, EndArrow)
	full.Color = Preset("4")
	full.Label = "calls"

	tests := []struct {
		name string
		edge *Edge
		want string
	}{
		{
			name: "minimal",
			edge: NewEdge(MustEdgeID("e1"), MustNodeID("a"), MustNodeID("b")),
			want: `{"id":"e1","fromNode":"a","toNode":"b"}`,
		},
		{
			name: "full",
			edge: full,
			want: `{"id":"e1","fromNode":"a","fromSide":"right","fromEnd":"none","toNode":"b","toSide":"left","toEnd":"arrow","color":"4","label":"calls"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.edge.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}

			var back Edge
			if err := json.Unmarshal(got, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if back != *tt.edge {
				t.Errorf("round trip = %+v, want %+v", back, *tt.edge)
			}
		})
	}
}

func TestEdgeMarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		edge *Edge
		want error
	}{
		{"zero id", &Edge{FromNode: MustNodeID("a"), ToNode: MustNodeID("b")}, ErrEmptyID},
		{"zero from", &Edge{ID: MustEdgeID("e"), ToNode: MustNodeID("b")}, ErrEmptyID},
		{"bad side", &Edge{ID: MustEdgeID("e"), FromNode: MustNodeID("a"), ToNode: MustNodeID("b"), ToSide: "middle"}, ErrUnknownEnumValue},
		{"bad end", &Edge{ID: MustEdgeID("e"), FromNode: MustNodeID("a"), ToNode: MustNodeID("b"), FromEnd: "circle"}, ErrUnknownEnumValue},
		{"hash preset", &Edge{ID: MustEdgeID("e"), FromNode: MustNodeID("a"), ToNode: MustNodeID("b"), Color: Preset("#abc")}, ErrMalformedColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.edge.MarshalJSON(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEdgeUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  error
		field string
	}{
		{"missing id", `{"fromNode":"a","toNode":"b"}`, ErrMissingField, "id"},
		{"missing fromNode", `{"id":"e","toNode":"b"}`, ErrMissingField, "fromNode"},
		{"missing toNode", `{"id":"e","fromNode":"a"}`, ErrMissingField, "toNode"},
		{"empty toNode", `{"id":"e","fromNode":"a","toNode":""}`, ErrEmptyID, "toNode"},
		{"unknown key", `{"id":"e","fromNode":"a","toNode":"b","weight":3}`, ErrUnknownField, "weight"},
		{"uppercase side", `{"id":"e","fromNode":"a","toNode":"b","fromSide":"Top"}`, ErrUnknownEnumValue, "fromSide"},
		{"unknown side", `{"id":"e","fromNode":"a","toNode":"b","toSide":"center"}`, ErrUnknownEnumValue, "toSide"},
		{"unknown end", `{"id":"e","fromNode":"a","toNode":"b","toEnd":"diamond"}`, ErrUnknownEnumValue, "toEnd"},
		{"numeric label", `{"id":"e","fromNode":"a","toNode":"b","label":1}`, ErrInvalidValue, "label"},
		{"bad color", `{"id":"e","fromNode":"a","toNode":"b","color":"#12"}`, ErrMalformedColor, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Edge
			err := e.UnmarshalJSON([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("error %v should name field %q", err, tt.field)
			}
		})
	}
}

func TestEdgeUnmarshalLenient(t *testing.T) {
	in := []byte(`{"id":"e","fromNode":"a","toNode":"b","fromSide":null,"label":"","x-custom":true}`)
	e, err := decodeEdge(in, DecodeOptions{AllowUnknownFields: true})
	if err != nil {
		t.Fatalf("decodeEdge: %v", err)
	}
	got, _ := e.MarshalJSON()
	if want := `{"id":"e","fromNode":"a","toNode":"b"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEdgeTouches(t *testing.T) {
	e := NewEdge(MustEdgeID("e"), MustNodeID("a"), MustNodeID("b"))
	if !e.Touches(MustNodeID("a")) || !e.Touches(MustNodeID("b")) {
		t.Error("edge should touch both endpoints")
	}
	if e.Touches(MustNodeID("c")) {
		t.Error("edge should not touch c")
	}
}

func TestParseSideEnd(t *testing.T) {
	for _, s := range []string{"top", "right", "bottom", "left"} {
		if got, err := ParseSide("fromSide", s); err != nil || string(got) != s {
			t.Errorf("ParseSide(%q) = %q, %v", s, got, err)
		}
	}
	for _, s := range []string{"none", "arrow"} {
		if got, err := ParseEnd("toEnd", s); err != nil || string(got) != s {
			t.Errorf("ParseEnd(%q) = %q, %v", s, got, err)
		}
	}
}
