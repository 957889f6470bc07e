package canvas

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

func sample(t *testing.T) *Canvas {
	t.Helper()
	c := New()
	u, _ := ParseURL("https://jsoncanvas.org")
	group := NewGroupNode(MustNodeID("g"), -50, -50, 600, 300)
	group.Label = "Ideas"
	group.Color = Purple
	link := NewLinkNode(MustNodeID("l"), 300, 0, 200, 100, u)
	link.Color, _ = ParseHex("#FF0000")
	file := NewFileNode(MustNodeID("f"), 0, 200, 200, 100, "notes/plan.md")
	file.Subpath = "#Goals"
	for _, n := range []Node{
		group,
		NewTextNode(MustNodeID("t"), 0, 0, 200, 100, "# Hello\n\n<world>"),
		link,
		file,
	} {
		if err := c.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	e1 := NewEdge(MustEdgeID("e1"), MustNodeID("t"), MustNodeID("l"))
	e1.SetFrom(MustNodeID("t"), SideRight, EndNone)
	e1.SetTo(MustNodeID("l"), SideLeft, EndArrow)
	e1.Label = "see"
	e2 := NewEdge(MustEdgeID("e2"), MustNodeID("t"), MustNodeID("f"))
	e2.Color = Green
	for _, e := range []*Edge{e1, e2} {
		if err := c.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return c
}

func TestSerializeSingleTextNode(t *testing.T) {
	c := New()
	if err := c.AddNode(NewTextNode(MustNodeID("n1"), 0, 0, 100, 100, "hi")); err != nil {
		t.Fatal(err)
	}
	got, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"nodes":[{"id":"n1","x":0,"y":0,"width":100,"height":100,"type":"text","text":"hi"}]}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestSerializeEmpty(t *testing.T) {
	got, err := New().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("empty canvas = %s, want {}", got)
	}

	for _, in := range []string{`{}`, `{"nodes":[],"edges":[]}`, `{"nodes":null}`} {
		c, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%s): %v", in, err)
		}
		if c.NodeCount() != 0 || c.EdgeCount() != 0 {
			t.Errorf("Parse(%s) not empty", in)
		}
	}
}

func TestParseLenientReferences(t *testing.T) {
	in := []byte(`{"nodes":[],"edges":[{"id":"e1","fromNode":"a","toNode":"b"}]}`)
	c, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e, ok := c.Edge(MustEdgeID("e1"))
	if !ok || e.FromNode.String() != "a" || e.ToNode.String() != "b" {
		t.Fatalf("edge not loaded: %+v", e)
	}

	err = c.Validate()
	if !errors.Is(err, ErrDanglingEndpoint) {
		t.Fatalf("Validate error = %v, want ErrDanglingEndpoint", err)
	}
	for _, id := range []string{`"a"`, `"b"`} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("Validate error %q should mention %s", err, id)
		}
	}

	_, err = ParseWith(in, DecodeOptions{ValidateReferences: true})
	if !errors.Is(err, ErrDanglingEndpoint) {
		t.Fatalf("strict parse error = %v, want ErrDanglingEndpoint", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "edges[0]" {
		t.Errorf("want *ParseError at edges[0], got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	c := sample(t)
	first, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := Parse(first)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, c) {
		t.Error("parsed canvas differs from original")
	}

	second, err := parsed.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("not idempotent:\n%s\n%s", first, second)
	}
	reparsed, err := Parse(second)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, reparsed) {
		t.Error("re-parse differs from first parse")
	}
	if !strings.Contains(string(first), "<world>") {
		t.Error("HTML characters should not be escaped")
	}
}

func TestFieldOmission(t *testing.T) {
	c := New()
	_ = c.AddNode(NewTextNode(MustNodeID("a"), 0, 0, 1, 1, ""))
	_ = c.AddNode(NewFileNode(MustNodeID("b"), 0, 0, 1, 1, "x"))
	_ = c.AddNode(NewGroupNode(MustNodeID("c"), 0, 0, 1, 1))
	_ = c.AddEdge(NewEdge(MustEdgeID("e"), MustNodeID("a"), MustNodeID("b")))
	out, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"color", "subpath", "label", "background", "backgroundStyle", "fromSide", "fromEnd", "toSide", "toEnd", "null"} {
		if strings.Contains(string(out), key) {
			t.Errorf("output should not contain %q: %s", key, out)
		}
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	c := New()
	if err := c.AddNode(NewTextNode(MustNodeID("a"), 0, 0, 1, 1, "first")); err != nil {
		t.Fatal(err)
	}
	err := c.AddNode(NewTextNode(MustNodeID("a"), 5, 5, 1, 1, "second"))
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Fatalf("error = %v, want ErrDuplicateNodeID", err)
	}
	var ie *IDError
	if !errors.As(err, &ie) || ie.ID != "a" {
		t.Errorf("want *IDError for a, got %v", err)
	}
	if c.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", c.NodeCount())
	}
	n, _ := c.Node(MustNodeID("a"))
	if n.(*TextNode).Text != "first" {
		t.Error("original node was replaced")
	}
}

func TestAddNodeInvalid(t *testing.T) {
	c := New()
	if err := c.AddNode(&TextNode{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("zero ID error = %v, want ErrEmptyID", err)
	}
	if err := c.AddNode(nil); err == nil {
		t.Error("nil node should fail")
	}
	if c.NodeCount() != 0 {
		t.Error("failed AddNode mutated the canvas")
	}
}

// Values the encoder could not read back must be refused on insertion.
func TestAddNodeRejectsUnencodable(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want error
	}{
		{"background style without image", &GroupNode{
			GenericNode: GenericNode{ID: MustNodeID("g")},
			Background:  &Background{Image: "", Style: BackgroundCover},
		}, ErrMissingField},
		{"malformed hash preset", &TextNode{GenericNode: GenericNode{ID: MustNodeID("a"), Color: Preset("#zz")}}, ErrMalformedColor},
		{"hex-looking preset", &TextNode{GenericNode: GenericNode{ID: MustNodeID("a"), Color: Preset("#abc")}}, ErrMalformedColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if err := c.AddNode(tt.node); !errors.Is(err, tt.want) {
				t.Fatalf("AddNode error = %v, want %v", err, tt.want)
			}
			if c.NodeCount() != 0 {
				t.Error("rejected node was stored")
			}
		})
	}

	e := NewEdge(MustEdgeID("e"), MustNodeID("a"), MustNodeID("b"))
	e.Color = Preset("#abc")
	c := New()
	c.AddNode(NewTextNode(MustNodeID("a"), 0, 0, 1, 1, ""))
	c.AddNode(NewTextNode(MustNodeID("b"), 0, 0, 1, 1, ""))
	if err := c.AddEdge(e); !errors.Is(err, ErrMalformedColor) {
		t.Errorf("AddEdge error = %v, want ErrMalformedColor", err)
	}
}

func TestAddEdge(t *testing.T) {
	c := New()
	_ = c.AddNode(NewTextNode(MustNodeID("a"), 0, 0, 1, 1, ""))
	_ = c.AddNode(NewTextNode(MustNodeID("b"), 0, 0, 1, 1, ""))

	if err := c.AddEdge(NewEdge(MustEdgeID("e"), MustNodeID("a"), MustNodeID("b"))); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	tests := []struct {
		name string
		edge *Edge
		want error
		id   string
	}{
		{"duplicate", NewEdge(MustEdgeID("e"), MustNodeID("b"), MustNodeID("a")), ErrDuplicateEdgeID, "e"},
		{"dangling from", NewEdge(MustEdgeID("e2"), MustNodeID("x"), MustNodeID("b")), ErrDanglingEndpoint, "x"},
		{"dangling to", NewEdge(MustEdgeID("e2"), MustNodeID("a"), MustNodeID("y")), ErrDanglingEndpoint, "y"},
		{"zero id", &Edge{FromNode: MustNodeID("a"), ToNode: MustNodeID("b")}, ErrEmptyID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.AddEdge(tt.edge)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if tt.id != "" {
				var ie *IDError
				if !errors.As(err, &ie) || ie.ID != tt.id {
					t.Errorf("want *IDError for %q, got %v", tt.id, err)
				}
			}
			if c.EdgeCount() != 1 {
				t.Errorf("EdgeCount = %d, want 1", c.EdgeCount())
			}
		})
	}
}

func TestInsertionOrder(t *testing.T) {
	c := New()
	ids := []string{"z", "a", "m", "b"}
	for _, id := range ids {
		_ = c.AddNode(NewTextNode(MustNodeID(id), 0, 0, 1, 1, id))
	}
	for i, n := range c.Nodes() {
		if n.Generic().ID.String() != ids[i] {
			t.Errorf("Nodes()[%d] = %s, want %s", i, n.Generic().ID, ids[i])
		}
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	c := sample(t)
	removed := c.RemoveNode(MustNodeID("t"))
	if len(removed) != 2 || removed[0].String() != "e1" || removed[1].String() != "e2" {
		t.Fatalf("removed = %v, want [e1 e2]", removed)
	}
	if _, ok := c.Node(MustNodeID("t")); ok {
		t.Error("node still present")
	}
	if c.EdgeCount() != 0 || len(c.Edges()) != 0 {
		t.Errorf("edges left: %d", c.EdgeCount())
	}
	if c.NodeCount() != 3 || len(c.Nodes()) != 3 {
		t.Errorf("NodeCount = %d, want 3", c.NodeCount())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate after cascade: %v", err)
	}
	if got := c.RemoveNode(MustNodeID("t")); got != nil {
		t.Errorf("second RemoveNode = %v, want nil", got)
	}
	if got := c.RemoveNode(MustNodeID("g")); got == nil || len(got) != 0 {
		t.Errorf("RemoveNode without edges = %#v, want empty slice", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	c := sample(t)
	if !c.RemoveEdge(MustEdgeID("e1")) {
		t.Fatal("RemoveEdge(e1) = false")
	}
	if c.RemoveEdge(MustEdgeID("e1")) {
		t.Error("second RemoveEdge(e1) = true")
	}
	edges := c.Edges()
	if len(edges) != 1 || edges[0].ID.String() != "e2" {
		t.Errorf("Edges() = %v", edges)
	}
	if got := c.EdgesOf(MustNodeID("l")); len(got) != 0 {
		t.Errorf("EdgesOf(l) = %v, want none", got)
	}
	if got := c.EdgesOf(MustNodeID("t")); len(got) != 1 {
		t.Errorf("EdgesOf(t) = %v, want one", got)
	}
}

func TestParseErrors(t *testing.T) {
	const text = `{"id":"a","x":0,"y":0,"width":1,"height":1,"type":"text","text":"x"}`
	tests := []struct {
		name string
		in   string
		want error
		path string
		code cerrors.Code
	}{
		{"duplicate node", `{"nodes":[` + text + `,` + text + `]}`, ErrDuplicateNodeID, "nodes[1]", cerrors.ErrCodeDuplicateNodeID},
		{"duplicate edge", `{"edges":[{"id":"e","fromNode":"a","toNode":"b"},{"id":"e","fromNode":"b","toNode":"a"}]}`, ErrDuplicateEdgeID, "edges[1]", cerrors.ErrCodeDuplicateEdgeID},
		{"bad node", `{"nodes":[` + text + `,{"id":"b","type":"text"}]}`, ErrMissingField, "nodes[1]", cerrors.ErrCodeMissingField},
		{"bad edge", `{"edges":[{"id":"e","fromNode":"a"}]}`, ErrMissingField, "edges[0]", cerrors.ErrCodeMissingField},
		{"unknown top-level key", `{"nodes":[],"version":1}`, ErrUnknownField, "", cerrors.ErrCodeUnknownField},
		{"nodes not array", `{"nodes":{}}`, ErrInvalidValue, "nodes", cerrors.ErrCodeInvalidValue},
		{"null document", `null`, ErrInvalidValue, "", cerrors.ErrCodeInvalidValue},
		{"repeated document key", `{"nodes":[],"nodes":[` + text + `]}`, ErrInvalidValue, "", cerrors.ErrCodeInvalidValue},
		{"repeated node key", `{"nodes":[{"id":"a","id":"b","x":0,"y":0,"width":1,"height":1,"type":"text","text":"x"}]}`, ErrInvalidValue, "nodes[0]", cerrors.ErrCodeInvalidValue},
		{"repeated edge key", `{"edges":[{"id":"e","fromNode":"a","toNode":"b","toNode":"c"}]}`, ErrInvalidValue, "edges[0]", cerrors.ErrCodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if pe.Path != tt.path {
				t.Errorf("Path = %q, want %q", pe.Path, tt.path)
			}
			if got := ErrorCode(err); got != tt.code {
				t.Errorf("ErrorCode = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"nodes":[`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if got := ErrorCode(err); got != cerrors.ErrCodeParse {
		t.Errorf("ErrorCode = %s, want %s", got, cerrors.ErrCodeParse)
	}
}

func TestParseAllowUnknownFields(t *testing.T) {
	in := []byte(`{"version":"1.0","nodes":[{"id":"a","x":0,"y":0,"width":1,"height":1,"type":"text","text":"x","extra":true}],"edges":[]}`)
	c, err := ParseWith(in, DecodeOptions{AllowUnknownFields: true})
	if err != nil {
		t.Fatalf("ParseWith: %v", err)
	}
	if c.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", c.NodeCount())
	}
}

func TestMarshalIndent(t *testing.T) {
	c := New()
	_ = c.AddNode(NewTextNode(MustNodeID("n1"), 0, 0, 1, 1, "<hi>"))
	got, err := c.MarshalIndent("", "  ")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"nodes\": [\n    {\n      \"id\": \"n1\",\n      \"x\": 0,\n      \"y\": 0,\n      \"width\": 1,\n      \"height\": 1,\n      \"type\": \"text\",\n      \"text\": \"<hi>\"\n    }\n  ]\n}"
	if string(got) != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasJSONInterfaces(t *testing.T) {
	c := sample(t)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var back Canvas
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if back.NodeCount() != c.NodeCount() || back.EdgeCount() != c.EdgeCount() {
		t.Errorf("counts differ: %d/%d vs %d/%d", back.NodeCount(), back.EdgeCount(), c.NodeCount(), c.EdgeCount())
	}
	n, ok := back.Node(MustNodeID("t"))
	if !ok || n.(*TextNode).Text != "# Hello\n\n<world>" {
		t.Errorf("text node lost through json.Marshal: %+v", n)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want cerrors.Code
	}{
		{nil, ""},
		{ErrEmptyID, cerrors.ErrCodeEmptyIdentifier},
		{&IDError{ID: "x", Err: ErrDanglingEndpoint}, cerrors.ErrCodeDanglingEndpoint},
		{&FieldError{Field: "color", Err: ErrMalformedColor}, cerrors.ErrCodeMalformedColor},
		{&FieldError{Field: "url", Err: ErrMalformedURL}, cerrors.ErrCodeMalformedURL},
		{&FieldError{Field: "type", Err: ErrUnknownEnumValue}, cerrors.ErrCodeUnknownEnumValue},
		{ErrZeroSize, cerrors.ErrCodeZeroSize},
		{cerrors.New(cerrors.ErrCodeNotFound, "gone"), cerrors.ErrCodeNotFound},
		{errors.New("boom"), cerrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&IDError{ID: "a", Err: ErrDuplicateNodeID}, `duplicate node ID: "a"`},
		{&FieldError{Field: "x", Err: ErrMissingField}, `field "x": missing required field`},
		{&FieldError{Field: "width", Value: "-1", Err: ErrInvalidValue}, `field "width": invalid field value: -1`},
		{&ParseError{Path: "nodes[0]", Err: ErrMissingField}, `parse canvas: nodes[0]: missing required field`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
