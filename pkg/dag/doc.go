// Package dag provides the directed graph that backs course prerequisite
// layouts.
//
// # Overview
//
// A course catalog is a set of courses joined by prerequisite edges. This
// package stores that graph; each node carries the row (level) the layered
// layout code assigned it. Edges point from the
// prerequisite to the dependent course.
//
// Unlike a textbook DAG the type tolerates cycles: malformed catalogs contain
// them and the layout engine must still produce coordinates. The transform
// subpackage reports the edges that close cycles.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs and edges can only connect
// existing nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "S101"})
//	g.AddNode(dag.Node{ID: "S201"})
//	g.AddEdge(dag.Edge{From: "S101", To: "S201"})
//
// Query the graph structure with [DAG.Children], [DAG.Parents],
// [DAG.Sources], and related methods. Every listing is returned in
// insertion order, which keeps downstream layouts reproducible.
//
// # Node Types
//
//   - [NodeKindRegular]: courses declared in the input
//   - [NodeKindImplicit]: requisites the builder inserted because the course
//     list did not declare them
//
// # Edge Crossings
//
// The [CountCrossings] and [CountLayerCrossings] functions use a Fenwick tree
// (binary indexed tree) to count inversions in O(E log V) time. They are the
// core of the layout quality metrics.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Read-only operations such as
// counting crossings can run in parallel on a graph nobody is modifying.
//
// [transform]: github.com/matzehuels/coursemap/pkg/dag/transform
package dag
