package layout

// Arc is a linear stack whose levels bend into a parabola: each node is
// pushed outward by Curvature × norm² × span, where norm is its distance from
// the level center scaled to [-1, 1] and span is the level's extent.
// Single-node levels sit at offset 0.
//
// When MaxNodeSpacing is positive, node spacing adapts per level to
// MinNodeSpacing + (MaxNodeSpacing-MinNodeSpacing)/(1+avg), where avg is the
// mean of Degrees over the level's nodes. Busy levels pack tighter.
type Arc struct {
	Axis           Axis
	LevelSpacing   float64
	NodeSpacing    float64
	Curvature      float64
	MinNodeSpacing float64
	MaxNodeSpacing float64
	Degrees        map[string]int
}

// NewArc returns the horizontal arc: levels 4.5 apart, nodes 2.0 apart,
// curvature 0.3.
func NewArc() Arc {
	return Arc{Axis: Horizontal, LevelSpacing: 4.5, NodeSpacing: 2.0, Curvature: 0.3}
}

// NewCompactArc returns the degree-adaptive horizontal arc: levels 5.0
// apart, node spacing between 1.5 and 3.0, curvature 0.25.
func NewCompactArc() Arc {
	return Arc{
		Axis:           Horizontal,
		LevelSpacing:   5.0,
		Curvature:      0.25,
		MinNodeSpacing: 1.5,
		MaxNodeSpacing: 3.0,
	}
}

// Name implements [Strategy].
func (a Arc) Name() string {
	if a.adaptive() {
		return "arc-compact"
	}
	return "arc"
}

// WithDegrees implements [DegreeAware].
func (a Arc) WithDegrees(degrees map[string]int) Strategy {
	a.Degrees = degrees
	return a
}

func (a Arc) adaptive() bool { return a.MaxNodeSpacing > 0 }

// Place implements [Strategy].
func (a Arc) Place(layers [][]string, pos map[string]int) Coordinates {
	coords := make(Coordinates)
	for li, layer := range layers {
		ids := arrange(layer, pos)
		n := len(ids)
		level := float64(li) * a.LevelSpacing
		if n == 1 {
			x, y := a.Axis.place(level, 0)
			coords[ids[0]] = Coord{X: x, Y: y}
			continue
		}

		spacing := a.spacing(ids)
		span := float64(n-1) * spacing
		half := float64(n-1) / 2
		for i, id := range ids {
			norm := (float64(i) - half) / half
			offset := centered(i, n, spacing) + a.Curvature*norm*norm*span
			x, y := a.Axis.place(level, offset)
			coords[id] = Coord{X: x, Y: y}
		}
	}
	return coords
}

func (a Arc) spacing(ids []string) float64 {
	if !a.adaptive() {
		return a.NodeSpacing
	}
	sum := 0
	for _, id := range ids {
		sum += a.Degrees[id]
	}
	avg := float64(sum) / float64(len(ids))
	return a.MinNodeSpacing + (a.MaxNodeSpacing-a.MinNodeSpacing)/(1+avg)
}
