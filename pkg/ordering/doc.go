// Package ordering arranges the courses inside each level from left to right.
//
// # The Ordering Problem
//
// Once courses are assigned to levels, the order inside each level decides
// how many prerequisite edges cross. Finding the minimum is NP-hard, so this
// package uses the barycenter heuristic from Sugiyama-style layered drawing.
//
// # Seeding
//
// Every run starts from a deterministic seed ([Seed]): courses are grouped
// by department in a configured order, sorted by identifier inside a group,
// and declared keep-adjacent pairs are pulled together.
//
// # Barycentric Heuristic
//
// [Barycentric] repeats a fixed number of iterations. Each iteration sweeps
// forward (levels in increasing order, looking at prerequisites) and then
// backward (decreasing order, looking at dependents). A course moves to the
// mean position of its neighbors in the sweep direction; a course with no
// such neighbors keeps its current position as its value. Levels are
// re-sorted stably so ties keep their current order, and updated positions
// are visible to the next level immediately.
//
// There is no convergence test. The iteration count bounds the work and a
// run that cannot improve the layout simply leaves it unchanged.
//
// # Neighbor Policy
//
// [NeighborsAdjacent] (the default) averages only neighbors on the level
// directly before or after. [NeighborsAll] averages every prerequisite on any
// earlier level, or every dependent on any later level. The chosen policy
// applies to both sweep directions.
//
// # Usage
//
//	var orderer ordering.Orderer = ordering.Barycentric{Iterations: 10}
//	pos := orderer.Order(g, levels.Layers)
//	rows := pos.Layers(levels.Layers) // each level sorted left to right
package ordering
