package transform

import (
	"maps"
	"slices"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/errors"
)

// Default display numbering: dense level i is shown as (i+1)*100.
const (
	DefaultDisplaySpacing = 100
	DefaultDisplayOffset  = 1
)

// SplitRule describes two numeric bands that should not share a level.
// When a computed level holds a node of band Lower together with a node of
// band Upper or higher, the higher-band nodes move to a new level directly
// above it.
type SplitRule struct {
	Lower int
	Upper int
}

// DefaultSplitRule separates third-year from fourth-year courses.
func DefaultSplitRule() SplitRule { return SplitRule{Lower: 300, Upper: 400} }

// Rules are the declarative post-processing steps applied after the
// generic leveling pass. Identifiers that are not in the graph are ignored.
type Rules struct {
	// PinToMaxPlusOne lists nodes forced onto a level above every other node.
	PinToMaxPlusOne []string
	// Equalize copies the level of the first id onto the second, in order.
	Equalize [][2]string
	// Split enables the band-splitting post-pass when non-nil.
	Split *SplitRule
	// DisplaySpacing multiplies dense level indices for presentation.
	// Zero means DefaultDisplaySpacing.
	DisplaySpacing int
	// DisplayOffset is added to dense level indices before spacing.
	DisplayOffset int
}

// DefaultRules returns rules with no overrides and the default display
// numbering.
func DefaultRules() Rules {
	return Rules{DisplaySpacing: DefaultDisplaySpacing, DisplayOffset: DefaultDisplayOffset}
}

// Levels is the result of [AssignLevels].
type Levels struct {
	// Raw is the level after leveling, fallback and rules, before compaction.
	Raw map[string]int
	// Index is the dense level, 0..len(Layers)-1.
	Index map[string]int
	// Display is the presentation level, e.g. 100, 200, ...
	Display map[string]int
	// Layers lists the nodes of each dense level in graph insertion order.
	Layers [][]string
	// Fallback lists nodes whose level came from their declared band because
	// a cycle kept them from ever being released.
	Fallback []string
}

// Count returns the number of dense levels.
func (l *Levels) Count() int { return len(l.Layers) }

// AssignLevels computes a hierarchical level for every node of g.
//
// The base pass is Kahn's algorithm with longest-path relaxation: nodes with
// no prerequisites start at level 0 and each processed node lifts its
// dependents to at least its own level plus one. The frontier is processed
// first-in first-out and seeded in node insertion order, so ties resolve the
// same way on every run.
//
// # Cycles
//
// Nodes on or behind a cycle never reach in-degree zero. A node that was
// lifted by some released prerequisite keeps that level. A node nobody
// reached falls back to its declared band divided by 100 (S307 → 3). Cycles
// are never an error.
//
// # Post-processing
//
// After the base pass the rules run in this order: pins, equalize pairs,
// band split. The distinct levels are then compacted to a dense sequence and
// the graph's rows are set to the dense index.
//
// An empty graph yields empty maps. [errors.ErrCodeUnresolvedLevel] is
// returned only if a node ends up without a level, which indicates a bug.
func AssignLevels(g *dag.DAG, rules Rules) (*Levels, error) {
	nodes := g.Nodes()
	raw := make(map[string]int, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			raw[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row, ok := raw[child]; !ok || raw[curr]+1 > row {
				raw[child] = raw[curr] + 1
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	var fallback []string
	for _, n := range nodes {
		if _, ok := raw[n.ID]; !ok {
			raw[n.ID] = n.Band() / 100
			fallback = append(fallback, n.ID)
		}
	}

	applyPins(raw, rules.PinToMaxPlusOne)
	applyEqualize(raw, rules.Equalize)
	if rules.Split != nil {
		applySplit(g, raw, *rules.Split)
	}

	for _, n := range nodes {
		if _, ok := raw[n.ID]; !ok {
			return nil, errors.New(errors.ErrCodeUnresolvedLevel, "node %q has no level", n.ID)
		}
	}

	levels := compact(nodes, raw, rules)
	levels.Fallback = fallback
	g.SetRows(levels.Index)
	return levels, nil
}

func applyPins(raw map[string]int, ids []string) {
	if len(ids) == 0 || len(raw) == 0 {
		return
	}
	top := maxLevel(raw) + 1
	for _, id := range ids {
		if _, ok := raw[id]; ok {
			raw[id] = top
		}
	}
}

func applyEqualize(raw map[string]int, pairs [][2]string) {
	for _, p := range pairs {
		from, ok := raw[p[0]]
		if !ok {
			continue
		}
		if _, ok := raw[p[1]]; ok {
			raw[p[1]] = from
		}
	}
}

// applySplit walks levels from the bottom up. A mixed level keeps its
// lower-band nodes; upper-band nodes and every higher level shift up by one.
// The new level only holds upper-band nodes, so it is never mixed itself.
func applySplit(g *dag.DAG, raw map[string]int, rule SplitRule) {
	nodes := g.Nodes()
	for cur := minLevel(raw); cur <= maxLevel(raw); cur++ {
		var hasLower, hasUpper bool
		for _, n := range nodes {
			if raw[n.ID] != cur {
				continue
			}
			switch b := n.Band(); {
			case b == rule.Lower:
				hasLower = true
			case b >= rule.Upper:
				hasUpper = true
			}
		}
		if !hasLower || !hasUpper {
			continue
		}
		for _, n := range nodes {
			switch lvl := raw[n.ID]; {
			case lvl > cur:
				raw[n.ID] = lvl + 1
			case lvl == cur && n.Band() >= rule.Upper:
				raw[n.ID] = cur + 1
			}
		}
		cur++ // skip the level just created
	}
}

func compact(nodes []*dag.Node, raw map[string]int, rules Rules) *Levels {
	spacing := rules.DisplaySpacing
	if spacing == 0 {
		spacing = DefaultDisplaySpacing
	}

	distinct := distinctLevels(raw)
	dense := make(map[int]int, len(distinct))
	for i, lvl := range distinct {
		dense[lvl] = i
	}

	out := &Levels{
		Raw:     raw,
		Index:   make(map[string]int, len(nodes)),
		Display: make(map[string]int, len(nodes)),
		Layers:  make([][]string, len(distinct)),
	}
	for _, n := range nodes {
		i := dense[raw[n.ID]]
		out.Index[n.ID] = i
		out.Display[n.ID] = (i + rules.DisplayOffset) * spacing
		out.Layers[i] = append(out.Layers[i], n.ID)
	}
	return out
}

func distinctLevels(raw map[string]int) []int {
	seen := make(map[int]struct{}, len(raw))
	for _, lvl := range raw {
		seen[lvl] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

func maxLevel(raw map[string]int) int {
	first := true
	m := 0
	for _, lvl := range raw {
		if first || lvl > m {
			m, first = lvl, false
		}
	}
	return m
}

func minLevel(raw map[string]int) int {
	first := true
	m := 0
	for _, lvl := range raw {
		if first || lvl < m {
			m, first = lvl, false
		}
	}
	return m
}
