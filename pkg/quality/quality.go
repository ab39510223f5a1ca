// Package quality measures how readable a layout is.
//
// Nothing here fails a run. Crossings, level violations and cycles are
// diagnostics: the layout is always produced, and these numbers say how good
// it turned out.
package quality

import (
	"math"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/ordering"
)

// CountCrossings counts edge crossings between adjacent levels after
// sorting every level by pos. Edges that skip a level are not counted. See
// [dag.CountLayerCrossings] for the definition of a crossing.
func CountCrossings(g *dag.DAG, layers [][]string, pos ordering.Positions) int {
	return dag.CountCrossings(g, pos.Layers(layers))
}

// TotalEdgeLength sums the Euclidean length of every edge whose endpoints
// both have coordinates. Edges with a missing endpoint are skipped.
func TotalEdgeLength(coords layout.Coordinates, g *dag.DAG) float64 {
	total := 0.0
	for _, e := range g.Edges() {
		a, ok := coords[e.From]
		if !ok {
			continue
		}
		b, ok := coords[e.To]
		if !ok {
			continue
		}
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// Violation is a prerequisite edge whose source is not strictly below its
// target.
type Violation struct {
	From, To           string
	FromLevel, ToLevel int
}

// LevelViolations returns every edge From → To with level[From] >=
// level[To], in edge insertion order. Edges with an endpoint missing from
// level are ignored.
func LevelViolations(g *dag.DAG, level map[string]int) []Violation {
	var out []Violation
	for _, e := range g.Edges() {
		lf, ok := level[e.From]
		if !ok {
			continue
		}
		lt, ok := level[e.To]
		if !ok {
			continue
		}
		if lf >= lt {
			out = append(out, Violation{From: e.From, To: e.To, FromLevel: lf, ToLevel: lt})
		}
	}
	return out
}

// Report summarizes the quality of one layout run.
type Report struct {
	Levels           int         `json:"levels"`
	Courses          int         `json:"courses"`
	Edges            int         `json:"edges"`
	InitialCrossings int         `json:"initial_crossings"`
	FinalCrossings   int         `json:"final_crossings"`
	EdgeLength       float64     `json:"edge_length"`
	Violations       []Violation `json:"violations,omitempty"`
	Cycles           [][2]string `json:"cycles,omitempty"`
	Fallback         []string    `json:"fallback,omitempty"`
}

// Improvement returns the fraction of initial crossings removed by
// ordering, in [0, 1] when ordering helped. It is 0 when there were no
// initial crossings.
func (r Report) Improvement() float64 {
	if r.InitialCrossings == 0 {
		return 0
	}
	return float64(r.InitialCrossings-r.FinalCrossings) / float64(r.InitialCrossings)
}

// Clean reports whether the layout has no crossings, violations or cycles.
func (r Report) Clean() bool {
	return r.FinalCrossings == 0 && len(r.Violations) == 0 && len(r.Cycles) == 0
}
