package transform

import "github.com/matzehuels/coursemap/pkg/dag"

// BackEdges returns the edges that close a directed cycle, as found by a
// depth-first search started from sources first and then from any node still
// unvisited, both in insertion order. Removing every returned edge would make
// the graph acyclic. The graph is not modified.
//
// Prerequisite cycles are data errors in a catalog, not engine errors; the
// result is meant for diagnostics.
func BackEdges(g *dag.DAG) [][2]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return backEdges
}
