package ordering

import (
	"cmp"
	"slices"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag"
)

// SeedRule controls the initial order of every level.
type SeedRule struct {
	// DepartmentOrder lists departments that come first, in order. Courses of
	// unlisted departments follow, grouped alphabetically by department.
	DepartmentOrder []string
	// KeepAdjacent pairs are placed side by side: the second member is moved
	// directly after the first when both share a level.
	KeepAdjacent [][2]string
}

// DefaultSeedRule orders science, mathematics and data courses first.
func DefaultSeedRule() SeedRule {
	return SeedRule{DepartmentOrder: []string{"S", "M", "D"}}
}

// Seed returns the initial positions for layers under rule. Within a
// department group courses are sorted by identifier. The result is a dense
// permutation of each level.
func Seed(g *dag.DAG, layers [][]string, rule SeedRule) Positions {
	rank := make(map[string]int, len(rule.DepartmentOrder))
	for i, d := range rule.DepartmentOrder {
		if _, ok := rank[d]; !ok {
			rank[d] = i
		}
	}

	pos := make(Positions)
	for _, layer := range layers {
		ids := slices.Clone(layer)
		slices.SortStableFunc(ids, func(a, b string) int {
			da, db := department(g, a), department(g, b)
			if c := cmp.Compare(deptRank(rank, da), deptRank(rank, db)); c != 0 {
				return c
			}
			if c := cmp.Compare(da, db); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		ids = keepAdjacent(ids, rule.KeepAdjacent)
		pos.assign(ids)
	}
	return pos
}

func deptRank(rank map[string]int, dept string) int {
	if r, ok := rank[dept]; ok {
		return r
	}
	return len(rank)
}

func department(g *dag.DAG, id string) string {
	if n, ok := g.Node(id); ok {
		if d := n.Department(); d != "" {
			return d
		}
	}
	return catalog.ParseID(id).Department
}

func keepAdjacent(ids []string, pairs [][2]string) []string {
	for _, p := range pairs {
		i := slices.Index(ids, p[0])
		j := slices.Index(ids, p[1])
		if i < 0 || j < 0 || i == j {
			continue
		}
		ids = slices.Delete(ids, j, j+1)
		if j < i {
			i--
		}
		ids = slices.Insert(ids, i+1, p[1])
	}
	return ids
}
