package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DAG.AddEdge] when From and To are equal.
	ErrSelfLoop = errors.New("self-loop edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Metadata maps are never nil - they are automatically initialized to
// empty maps when needed.
type Metadata map[string]any

// Well-known metadata keys set by the catalog builder.
const (
	MetaDepartment = "department" // node: department letter (string)
	MetaBand       = "band"       // node: declared numeric band, e.g. 300 (int)
	MetaPrimary    = "primary"    // edge: any merged requisite was primary (bool)
	MetaSelfLoops  = "self_loops" // graph: dropped self-loop requisites (int)
)

// Band returns the node's declared numeric band, or 0 when absent.
func (n Node) Band() int {
	b, _ := n.Meta[MetaBand].(int)
	return b
}

// Department returns the node's department letter, or "" when absent.
func (n Node) Department() string {
	d, _ := n.Meta[MetaDepartment].(string)
	return d
}

// NodeKind distinguishes declared nodes from nodes the builder inserted on
// its own.
type NodeKind int

const (
	// NodeKindRegular represents a node declared in the input node list.
	NodeKindRegular NodeKind = iota
	// NodeKindImplicit represents a node inserted because an edge referenced
	// an identifier absent from the declared node list.
	NodeKindImplicit
)

// String returns "regular" or "implicit".
func (k NodeKind) String() string {
	if k == NodeKindImplicit {
		return "implicit"
	}
	return "regular"
}

// Node represents a vertex in the graph with an assigned row (level).
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID   string   // Unique identifier
	Row  int      // Level assignment (0 = no prerequisites)
	Kind NodeKind // Declared or implicit
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// IsImplicit reports whether the node was inserted by the graph builder
// rather than declared in the input.
func (n Node) IsImplicit() bool { return n.Kind == NodeKindImplicit }

// Edge represents a directed connection From → To. In a prerequisite graph
// From is the prerequisite and To the dependent course.
type Edge struct {
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a directed graph organized into rows (levels). Despite the name it
// tolerates cycles: malformed catalogs do contain them, and the layering code
// is responsible for coping.
//
// Unlike a plain map-backed graph, a DAG remembers insertion order for both
// nodes and edges. Every traversal in this module is seeded from that order,
// which is what makes layouts reproducible run to run.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> dependent IDs
	incoming map[string][]string // nodeID -> prerequisite IDs
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// automatically initialized to an empty map if nil.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	return nil
}

// SetRows updates the row assignments for nodes. Nodes not present in the
// rows map retain their current row assignment.
func (d *DAG) SetRows(rows map[string]int) {
	for id, row := range rows {
		if n, ok := d.nodes[id]; ok {
			n.Row = row
		}
	}
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist,
// ErrUnknownTargetNode if the To node doesn't exist, or ErrSelfLoop if
// both ends are the same node. The edge's Meta field is automatically
// initialized to an empty map if nil.
//
// Multiple edges between the same nodes are allowed; use HasEdge to avoid them.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether an edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// Edge returns a pointer to the first edge from→to, or nil if none exists.
// Modifying the returned edge's Meta affects the graph.
func (d *DAG) Edge(from, to string) *Edge {
	for i := range d.edges {
		if d.edges[i].From == from && d.edges[i].To == to {
			return &d.edges[i]
		}
	}
	return nil
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned
// slice or its edge structs do not affect the graph.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has edges to (its dependents).
// Returns nil if the node has no children or doesn't exist. The returned slice
// should not be modified - use it as a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node (its
// prerequisites). Returns nil if the node has no parents or doesn't exist.
// The returned slice should not be modified - use it as a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Degree returns InDegree + OutDegree.
func (d *DAG) Degree(id string) int { return len(d.incoming[id]) + len(d.outgoing[id]) }

// Node returns the node with the given ID and true, or nil and false if not found.
// The returned node pointer refers to the actual node in the graph.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
// Returns an empty map for a nil or empty slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
