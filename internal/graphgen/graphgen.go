// Package graphgen generates random course graphs for property tests.
package graphgen

import (
	"fmt"
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/matzehuels/coursemap/pkg/dag"
)

var departments = []string{"S", "M", "D"}

// ID returns the course identifier used for node i, e.g. "S103" or "M214".
// The band digit grows with i so higher-numbered nodes look like later
// courses.
func ID(i, n int) string {
	band := 1 + (4*i)/max(n, 1)
	return fmt.Sprintf("%s%d%02d", departments[i%len(departments)], band, i)
}

// Build creates a graph with n nodes and one edge per code. A code c
// encodes the pair (c%n, c/n%n). When acyclic is set only pairs pointing
// from a lower to a higher node index are kept. Self pairs and repeats are
// skipped.
func Build(n int, codes []int, acyclic bool) *dag.DAG {
	g := dag.New(nil)
	for i := 0; i < n; i++ {
		id := ID(i, n)
		_ = g.AddNode(dag.Node{ID: id, Meta: dag.Metadata{
			dag.MetaDepartment: id[:1],
			dag.MetaBand:       int(id[1]-'0') * 100,
		}})
	}
	for _, c := range codes {
		from, to := c%n, (c/n)%n
		if from == to || (acyclic && from > to) {
			continue
		}
		f, t := ID(from, n), ID(to, n)
		if g.HasEdge(f, t) {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: f, To: t})
	}
	return g
}

// Acyclic generates graphs of 1..maxNodes nodes with edges only from lower
// to higher node index.
func Acyclic(maxNodes int) gopter.Gen {
	return graphs(maxNodes, true)
}

// Any generates graphs of 1..maxNodes nodes that may contain cycles.
func Any(maxNodes int) gopter.Gen {
	return graphs(maxNodes, false)
}

func graphs(maxNodes int, acyclic bool) gopter.Gen {
	return gen.IntRange(1, maxNodes).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		return gen.SliceOf(gen.IntRange(0, n*n-1)).Map(func(codes []int) *dag.DAG {
			return Build(n, codes, acyclic)
		})
	}, reflect.TypeOf(&dag.DAG{}))
}
