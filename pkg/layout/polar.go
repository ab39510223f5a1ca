package layout

import "math"

// Circular places each level on a circular arc. The radius grows by
// RadiusStep per level from BaseRadius. Nodes are spread evenly over Span
// radians starting at Start; a single node sits at the arc midpoint.
//
// When SpanPerNode is positive the span adapts to the level size as
// min(Span, n × SpanPerNode), staying centered on the arc midpoint. This
// gives a fan that widens with busier levels.
type Circular struct {
	BaseRadius  float64
	RadiusStep  float64
	Span        float64
	Start       float64
	SpanPerNode float64
}

// NewCircular returns half-circle arcs from -90° to 90°, radius 5.0 growing
// by 4.0 per level.
func NewCircular() Circular {
	return Circular{BaseRadius: 5.0, RadiusStep: 4.0, Span: math.Pi, Start: -math.Pi / 2}
}

// NewFan returns an upward fan centered on 90°, radius 3.0 growing by 2.5
// per level, 0.4 rad per node up to 108°.
func NewFan() Circular {
	span := 0.6 * math.Pi
	return Circular{
		BaseRadius:  3.0,
		RadiusStep:  2.5,
		Span:        span,
		Start:       math.Pi/2 - span/2,
		SpanPerNode: 0.4,
	}
}

// Name implements [Strategy].
func (c Circular) Name() string {
	if c.SpanPerNode > 0 {
		return "fan"
	}
	return "circular"
}

// Place implements [Strategy].
func (c Circular) Place(layers [][]string, pos map[string]int) Coordinates {
	coords := make(Coordinates)
	mid := c.Start + c.Span/2
	for li, layer := range layers {
		ids := arrange(layer, pos)
		n := len(ids)
		r := c.BaseRadius + float64(li)*c.RadiusStep
		if n == 1 {
			coords[ids[0]] = polar(r, mid, false)
			continue
		}

		span := c.Span
		if c.SpanPerNode > 0 {
			span = math.Min(c.Span, float64(n)*c.SpanPerNode)
		}
		start := mid - span/2
		step := span / float64(n-1)
		for i, id := range ids {
			coords[id] = polar(r, start+float64(i)*step, false)
		}
	}
	return coords
}

// Radial places each level on a full circle. The radius grows by RadiusStep
// per level from BaseRadius. A level of n nodes divides the circle into n
// equal steps starting at Start and turning clockwise (or counterclockwise
// when Clockwise is false). A single node sits at angle 0.
//
// Radial coordinates are polar: R and Theta are part of the output.
type Radial struct {
	BaseRadius float64
	RadiusStep float64
	Start      float64
	Clockwise  bool
}

// NewRadial returns full circles from radius 2.0 in steps of 2.5, starting
// at 90° and turning clockwise.
func NewRadial() Radial {
	return Radial{BaseRadius: 2.0, RadiusStep: 2.5, Start: math.Pi / 2, Clockwise: true}
}

// Name implements [Strategy].
func (Radial) Name() string { return "radial" }

// Place implements [Strategy].
func (r Radial) Place(layers [][]string, pos map[string]int) Coordinates {
	coords := make(Coordinates)
	dir := 1.0
	if r.Clockwise {
		dir = -1.0
	}
	for li, layer := range layers {
		ids := arrange(layer, pos)
		n := len(ids)
		radius := r.BaseRadius + float64(li)*r.RadiusStep
		if n == 1 {
			coords[ids[0]] = polar(radius, 0, true)
			continue
		}
		step := 2 * math.Pi / float64(n)
		for i, id := range ids {
			coords[id] = polar(radius, r.Start+dir*float64(i)*step, true)
		}
	}
	return coords
}

func polar(r, theta float64, exposed bool) Coord {
	return Coord{
		X:     r * math.Cos(theta),
		Y:     r * math.Sin(theta),
		R:     r,
		Theta: theta,
		Polar: exposed,
	}
}
