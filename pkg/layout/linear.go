package layout

// Linear stacks levels along one axis and centers each level's nodes on the
// other.
type Linear struct {
	Axis         Axis
	LevelSpacing float64
	NodeSpacing  float64
}

// NewLinear returns the vertical stack: levels 3.0 apart, nodes 2.0 apart.
func NewLinear() Linear {
	return Linear{Axis: Vertical, LevelSpacing: 3.0, NodeSpacing: 2.0}
}

// Name implements [Strategy].
func (Linear) Name() string { return "linear" }

// Place implements [Strategy].
func (l Linear) Place(layers [][]string, pos map[string]int) Coordinates {
	coords := make(Coordinates)
	for li, layer := range layers {
		ids := arrange(layer, pos)
		for i, id := range ids {
			x, y := l.Axis.place(float64(li)*l.LevelSpacing, centered(i, len(ids), l.NodeSpacing))
			coords[id] = Coord{X: x, Y: y}
		}
	}
	return coords
}
