package canvas

import (
	"errors"
	"slices"
)

// Canvas is a JSON Canvas document: a set of nodes and a set of directed
// edges between them, both keyed by identifier.
//
// Canvas enforces two invariants on insertion: identifiers are unique, and
// every edge added through [Canvas.AddEdge] connects nodes the canvas
// already contains. Documents decoded with [Parse] are only checked for
// unique identifiers; call [Canvas.Validate] (or decode with
// [DecodeOptions.ValidateReferences]) to check edge endpoints as well.
//
// Nodes and edges are kept in insertion order, which is also the order in
// which they are encoded. The zero value is not usable; use [New].
// Canvas is not safe for concurrent use without external synchronization.
type Canvas struct {
	nodes     map[NodeID]Node
	nodeOrder []NodeID
	edges     map[EdgeID]*Edge
	edgeOrder []EdgeID
}

// New creates an empty canvas.
func New() *Canvas {
	return &Canvas{
		nodes: make(map[NodeID]Node),
		edges: make(map[EdgeID]*Edge),
	}
}

// AddNode inserts n. It returns ErrEmptyID if the node has no identifier and
// an *IDError wrapping ErrDuplicateNodeID if a node with the same ID exists.
// On failure the canvas is unchanged.
//
// The canvas keeps n itself, not a copy: later changes through n are visible
// through [Canvas.Node]. Changing the ID of a node after insertion is not
// supported.
func (c *Canvas) AddNode(n Node) error {
	if err := validateNode(n); err != nil {
		return err
	}
	id := n.Generic().ID
	if _, exists := c.nodes[id]; exists {
		return &IDError{ID: id.String(), Err: ErrDuplicateNodeID}
	}
	c.nodes[id] = n
	c.nodeOrder = append(c.nodeOrder, id)
	return nil
}

// AddEdge inserts e. It returns ErrEmptyID for a zero edge or endpoint ID,
// an *IDError wrapping ErrDuplicateEdgeID if an edge with the same ID exists,
// and an *IDError wrapping ErrDanglingEndpoint naming the first endpoint the
// canvas does not contain. On failure the canvas is unchanged.
func (c *Canvas) AddEdge(e *Edge) error {
	if err := validateEdge(e); err != nil {
		return err
	}
	if _, exists := c.edges[e.ID]; exists {
		return &IDError{ID: e.ID.String(), Err: ErrDuplicateEdgeID}
	}
	for _, id := range []NodeID{e.FromNode, e.ToNode} {
		if _, ok := c.nodes[id]; !ok {
			return &IDError{ID: id.String(), Err: ErrDanglingEndpoint}
		}
	}
	c.insertEdge(e)
	return nil
}

func (c *Canvas) insertEdge(e *Edge) {
	c.edges[e.ID] = e
	c.edgeOrder = append(c.edgeOrder, e.ID)
}

// Node returns the node with the given ID.
func (c *Canvas) Node(id NodeID) (Node, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID.
func (c *Canvas) Edge(id EdgeID) (*Edge, bool) {
	e, ok := c.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order. The slice is freshly
// allocated; the nodes are shared with the canvas.
func (c *Canvas) Nodes() []Node {
	out := make([]Node, len(c.nodeOrder))
	for i, id := range c.nodeOrder {
		out[i] = c.nodes[id]
	}
	return out
}

// Edges returns all edges in insertion order. See [Canvas.Nodes].
func (c *Canvas) Edges() []*Edge {
	out := make([]*Edge, len(c.edgeOrder))
	for i, id := range c.edgeOrder {
		out[i] = c.edges[id]
	}
	return out
}

// NodeCount returns the number of nodes.
func (c *Canvas) NodeCount() int { return len(c.nodes) }

// EdgeCount returns the number of edges.
func (c *Canvas) EdgeCount() int { return len(c.edges) }

// EdgesOf returns the edges with id as either endpoint, in insertion order.
func (c *Canvas) EdgesOf(id NodeID) []*Edge {
	var out []*Edge
	for _, eid := range c.edgeOrder {
		if e := c.edges[eid]; e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEdge deletes the edge with the given ID and reports whether it
// existed.
func (c *Canvas) RemoveEdge(id EdgeID) bool {
	if _, ok := c.edges[id]; !ok {
		return false
	}
	delete(c.edges, id)
	c.edgeOrder = slices.DeleteFunc(c.edgeOrder, func(x EdgeID) bool { return x == id })
	return true
}

// RemoveNode deletes the node with the given ID together with every edge
// touching it, so the canvas never holds edges into a removed node. It
// returns the IDs of the removed edges, or nil if the node did not exist.
func (c *Canvas) RemoveNode(id NodeID) []EdgeID {
	if _, ok := c.nodes[id]; !ok {
		return nil
	}
	removed := []EdgeID{}
	for _, e := range c.EdgesOf(id) {
		removed = append(removed, e.ID)
		delete(c.edges, e.ID)
	}
	if len(removed) > 0 {
		c.edgeOrder = slices.DeleteFunc(c.edgeOrder, func(x EdgeID) bool {
			_, ok := c.edges[x]
			return !ok
		})
	}
	delete(c.nodes, id)
	c.nodeOrder = slices.DeleteFunc(c.nodeOrder, func(x NodeID) bool { return x == id })
	return removed
}

// Validate re-checks referential integrity: every edge endpoint must name a
// node in the canvas. It returns nil for a consistent canvas, otherwise the
// errors.Join of one *IDError wrapping ErrDanglingEndpoint per missing
// endpoint, in edge order.
func (c *Canvas) Validate() error {
	var errs []error
	for _, eid := range c.edgeOrder {
		e := c.edges[eid]
		for _, id := range []NodeID{e.FromNode, e.ToNode} {
			if _, ok := c.nodes[id]; !ok {
				errs = append(errs, &IDError{ID: id.String(), Err: ErrDanglingEndpoint})
			}
		}
	}
	return errors.Join(errs...)
}
