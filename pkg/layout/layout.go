package layout

import (
	"cmp"
	"math"
	"slices"
)

// Coord is the computed placement of one node.
type Coord struct {
	X, Y float64
	// R and Theta are the polar form, set by the polar strategies.
	// Theta is in radians.
	R, Theta float64
	// Polar marks coordinates whose radius and angle are part of the output.
	Polar bool
}

// ThetaDegrees returns Theta in degrees.
func (c Coord) ThetaDegrees() float64 { return Theta(c.Theta) }

// Theta converts radians to degrees.
func Theta(rad float64) float64 { return rad * 180 / math.Pi }

// Coordinates maps a node ID to its placement.
type Coordinates map[string]Coord

// Strategy places ordered levels. Layers lists the node IDs of each dense
// level; pos gives each node's position inside its level. Every node in
// layers gets exactly one entry in the result.
type Strategy interface {
	Name() string
	Place(layers [][]string, pos map[string]int) Coordinates
}

// DegreeAware is implemented by strategies that adapt spacing to node
// degrees. WithDegrees returns a copy configured with the given degrees.
type DegreeAware interface {
	WithDegrees(degrees map[string]int) Strategy
}

// Axis selects the direction in which levels advance.
type Axis int

const (
	// Vertical stacks levels along Y; positions spread along X.
	Vertical Axis = iota
	// Horizontal stacks levels along X; positions spread along Y.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// place returns the (x, y) pair for a level coordinate and an orthogonal
// offset.
func (a Axis) place(level, offset float64) (x, y float64) {
	if a == Horizontal {
		return level, offset
	}
	return offset, level
}

// arrange returns a copy of layer sorted by position. Ties and nodes
// without a position keep their input order.
func arrange(layer []string, pos map[string]int) []string {
	out := slices.Clone(layer)
	slices.SortStableFunc(out, func(a, b string) int {
		pa, oka := pos[a]
		pb, okb := pos[b]
		if !oka {
			pa = math.MaxInt
		}
		if !okb {
			pb = math.MaxInt
		}
		return cmp.Compare(pa, pb)
	})
	return out
}

// centered returns the offset of index i in a row of n evenly spaced items
// centered on zero.
func centered(i, n int, spacing float64) float64 {
	return (float64(i) - float64(n-1)/2) * spacing
}
