package dag

import "slices"

// CountCrossings returns the total number of edge crossings for the given
// layer orderings. Layers are consecutive dense levels, each listing node IDs
// in left-to-right order; crossings are summed over every pair of adjacent
// layers. Edges between non-adjacent layers are not counted.
//
// Example:
//
//	layers := [][]string{
//	    {"S101", "M101"},         // level 0
//	    {"S201", "S202", "M201"}, // level 1
//	}
//	crossings := dag.CountCrossings(g, layers)
//
// It runs in O(L × E log V) time where L is the number of layers, E is edges
// per layer pair, and V is nodes per layer.
func CountCrossings(g *DAG, layers [][]string) int {
	crossings := 0
	for i := 0; i+1 < len(layers); i++ {
		crossings += CountLayerCrossings(g, layers[i], layers[i+1])
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent layers using a
// Fenwick tree (binary indexed tree) for O(E log V) performance where E is the
// number of edges between the layers and V is the number of nodes in the
// lower layer.
//
// Edges are taken in either direction: an edge from the lower layer back up
// to the upper one is normalized to (upper position, lower position) before
// counting, so malformed input with cycles is still measured.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target positions
// when edges are sorted by source position. Edges sharing an endpoint never
// cross. Returns 0 if either layer is empty.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
		for _, parent := range g.Parents(nodeID) {
			if pos, ok := lowerPos[parent]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	// Sort edges by source position, then by target position
	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using Fenwick tree. Edges from the same source are
	// queried before any of them is inserted so they never count each other.
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for start := 0; start < len(edges); {
		end := start
		for end < len(edges) && edges[end].upper == edges[start].upper {
			end++
		}
		for _, e := range edges[start:end] {
			// Query: count edges seen so far with target <= e.lower
			lessOrEqual := 0
			for q := e.lower + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			// Crossings = edges seen so far with target > e.lower
			crossings += total - lessOrEqual
		}
		for _, e := range edges[start:end] {
			total++
			for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
				fenwick[idx]++
			}
		}
		start = end
	}
	return crossings
}
