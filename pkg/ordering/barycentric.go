package ordering

import (
	"cmp"
	"slices"

	"github.com/matzehuels/coursemap/pkg/dag"
)

// DefaultIterations is the number of forward/backward sweep pairs used when
// Barycentric.Iterations is zero.
const DefaultIterations = 10

// NeighborPolicy selects which neighbors contribute to a barycenter.
type NeighborPolicy int

const (
	// NeighborsAdjacent uses neighbors on the level directly before (forward
	// sweep) or after (backward sweep).
	NeighborsAdjacent NeighborPolicy = iota
	// NeighborsAll uses every prerequisite on an earlier level (forward) or
	// every dependent on a later level (backward).
	NeighborsAll
)

// String returns "adjacent" or "all".
func (p NeighborPolicy) String() string {
	if p == NeighborsAll {
		return "all"
	}
	return "adjacent"
}

// Barycentric orders levels with the iterative barycenter heuristic.
type Barycentric struct {
	// Iterations is the number of forward+backward sweep pairs.
	// Zero means DefaultIterations.
	Iterations int
	// Neighbors is the barycenter neighbor policy for both sweep directions.
	Neighbors NeighborPolicy
	// Seed determines the starting order.
	Seed SeedRule
	// OnIteration, if set, is called after every iteration with the live
	// positions. It must not modify them.
	OnIteration func(iter int, pos Positions)
}

// Order implements [Orderer].
func (b Barycentric) Order(g *dag.DAG, layers [][]string) Positions {
	pos := Seed(g, layers, b.Seed)
	if len(layers) < 2 {
		return pos
	}

	levelOf := make(map[string]int)
	for i, ids := range layers {
		for _, id := range ids {
			levelOf[id] = i
		}
	}
	rows := pos.Layers(layers)

	iters := b.Iterations
	if iters == 0 {
		iters = DefaultIterations
	}
	s := sweeper{g: g, pos: pos, levelOf: levelOf, policy: b.Neighbors}
	for it := 0; it < iters; it++ {
		for i := 1; i < len(rows); i++ {
			rows[i] = s.reorder(rows[i], i, true)
		}
		for i := len(rows) - 2; i >= 0; i-- {
			rows[i] = s.reorder(rows[i], i, false)
		}
		if b.OnIteration != nil {
			b.OnIteration(it, pos)
		}
	}
	return pos
}

type sweeper struct {
	g       *dag.DAG
	pos     Positions
	levelOf map[string]int
	policy  NeighborPolicy
}

// reorder sorts one level by barycenter and writes the new positions back.
// ids must be in current position order, so a stable sort breaks ties by
// current position.
func (s sweeper) reorder(ids []string, level int, forward bool) []string {
	bary := make(map[string]float64, len(ids))
	for _, id := range ids {
		bary[id] = s.barycenter(id, level, forward)
	}
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(bary[a], bary[b])
	})
	s.pos.assign(out)
	return out
}

func (s sweeper) barycenter(id string, level int, forward bool) float64 {
	nbrs := s.g.Children(id)
	if forward {
		nbrs = s.g.Parents(id)
	}

	sum, n := 0, 0
	for _, nb := range nbrs {
		l, ok := s.levelOf[nb]
		if !ok || !s.counts(l, level, forward) {
			continue
		}
		sum += s.pos[nb]
		n++
	}
	if n == 0 {
		return float64(s.pos[id])
	}
	return float64(sum) / float64(n)
}

func (s sweeper) counts(nbLevel, level int, forward bool) bool {
	if s.policy == NeighborsAll {
		if forward {
			return nbLevel < level
		}
		return nbLevel > level
	}
	if forward {
		return nbLevel == level-1
	}
	return nbLevel == level+1
}
