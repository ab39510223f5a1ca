// Package layout converts ordered levels into drawing coordinates.
//
// # Strategies
//
// A [Strategy] maps each course's (level, position) pair to a [Coord]. All
// strategies are pure functions of their input: the same levels and
// positions always produce bit-identical coordinates, and strategies may run
// concurrently over shared input.
//
//   - [Linear]: levels stacked along one axis, positions centered on the other
//   - [Arc]: like Linear, with a parabolic bend that pushes level ends outward
//   - [Circular]: concentric arcs, one per level, spread over a fixed span
//   - [Radial]: concentric full circles; also reports radius and angle
//
// # Presets
//
// [Preset] returns the named configurations used by the CLI and config files:
//
//	linear       vertical stack, levels 3.0 apart, nodes 2.0 apart
//	arc          horizontal stack with a 0.3 parabolic bend
//	arc-compact  horizontal arc whose node spacing shrinks for busy levels
//	circular     half-circle arcs from radius 5.0 in steps of 4.0
//	fan          upward fan whose span grows with level size
//	radial       full circles from radius 2.0 in steps of 2.5, clockwise from 90°
package layout
