package ordering

import (
	"slices"

	"github.com/matzehuels/coursemap/pkg/dag"
)

// Orderer determines the left-to-right position of every node inside its
// level. Layers lists the node IDs of each dense level; the result maps each
// node to a position in 0..len(layer)-1.
type Orderer interface {
	Order(g *dag.DAG, layers [][]string) Positions
}

// Positions maps a node ID to its ordinal position inside its level.
type Positions map[string]int

// Layer returns a copy of ids sorted by position. Nodes without a position
// keep their relative order after the positioned ones.
func (p Positions) Layer(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		pa, oka := p[a]
		pb, okb := p[b]
		switch {
		case oka && okb:
			return pa - pb
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
	return out
}

// Layers applies [Positions.Layer] to every level.
func (p Positions) Layers(layers [][]string) [][]string {
	out := make([][]string, len(layers))
	for i, ids := range layers {
		out[i] = p.Layer(ids)
	}
	return out
}

// Clone returns a copy of p.
func (p Positions) Clone() Positions {
	c := make(Positions, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func (p Positions) assign(ids []string) {
	for i, id := range ids {
		p[id] = i
	}
}
