// Package canvas implements the JSON Canvas data model and its JSON codec.
//
// A canvas document holds positioned nodes of four kinds (text, file, link
// and group) and directed edges connecting them:
//
//	{
//	  "nodes": [
//	    {"id":"a","x":0,"y":0,"width":250,"height":60,"type":"text","text":"Hello"},
//	    {"id":"b","x":400,"y":0,"width":250,"height":60,"type":"link","url":"https://jsoncanvas.org"}
//	  ],
//	  "edges": [
//	    {"id":"e","fromNode":"a","fromSide":"right","toNode":"b","toSide":"left","toEnd":"arrow"}
//	  ]
//	}
//
// # Nodes
//
// Every node embeds a [GenericNode] carrying its ID, position, size and
// optional [Color]. The concrete variants are [TextNode], [FileNode],
// [LinkNode] and [GroupNode]; on the wire they are flattened into a single
// object discriminated by the "type" key. Use a type switch on [Node] to
// reach variant fields.
//
// # Colors
//
// A [Color] is a preset name ("red", "1", or any future name) or a hex color
// ("#ff0000"). The two are told apart by the leading '#'.
//
// # Decoding
//
// [Parse] rejects unknown keys, accepts zero-sized nodes and does not check
// that edge endpoints exist. [ParseWith] and [DecodeOptions] change each of
// these. Decoding errors are *[ParseError] values wrapping a *[FieldError]
// or *[IDError], which in turn wrap one of the Err* sentinels; use
// errors.Is to test for a condition and [ErrorCode] to map an error onto a
// machine-readable code.
//
// # Mutation
//
// [Canvas.AddNode] and [Canvas.AddEdge] enforce unique IDs, and AddEdge also
// requires both endpoints to be present. [Canvas.RemoveNode] removes the
// edges touching the node along with it.
package canvas
