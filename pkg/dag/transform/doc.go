// Package transform assigns prerequisite graphs to hierarchical levels.
//
// # Level Assignment
//
// [AssignLevels] computes an integer level for every course so that each
// prerequisite sits strictly below the courses that depend on it. It uses
// Kahn's algorithm with longest-path relaxation, processed first-in first-out
// in node insertion order.
//
// Catalog data is messy. Courses caught in a prerequisite cycle never become
// ready in the topological pass; they fall back to the level implied by their
// declared band (S307 → 3) instead of failing the run.
//
// # Rules
//
// Institution-specific adjustments are expressed as [Rules] rather than
// hard-coded course numbers:
//
//	rules := transform.DefaultRules()
//	rules.PinToMaxPlusOne = []string{"S449"}          // capstone on top
//	rules.Equalize = [][2]string{{"S307", "S308"}}    // S308 beside S307
//	split := transform.DefaultSplitRule()
//	rules.Split = &split                              // 300s and 400s apart
//
// The computed levels are compacted to a dense sequence. [Levels.Display]
// carries presentation numbers (100, 200, ...).
//
// # Cycle Diagnostics
//
// [BackEdges] reports the edges that close cycles without modifying the
// graph, so callers can warn about malformed catalogs.
package transform
