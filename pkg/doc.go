// Package pkg holds the coursemap libraries.
//
// A layout run flows through the packages in this order:
//
//	records     read the dataset, extract courses and requisites
//	catalog     build the prerequisite graph (pkg/dag)
//	transform   assign levels, detect cycles (pkg/dag/transform)
//	ordering    seed and barycenter-sweep each level
//	layout      turn level and position into coordinates
//	quality     crossings, edge length and level violations
//	records     merge coordinates back into the dataset
//
// [pipeline] wires these together with [cache] and [observability];
// [config] maps coursemap.toml onto pipeline options.
package pkg
