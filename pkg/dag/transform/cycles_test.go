package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/coursemap/pkg/dag"
)

func graphOf(t *testing.T, ids []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestBackEdges_NoCycles(t *testing.T) {
	g := graphOf(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if got := BackEdges(g); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}

func TestBackEdges_SimpleCycle(t *testing.T) {
	g := graphOf(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	got := BackEdges(g)
	if !slices.Equal(got, [][2]string{{"b", "a"}}) {
		t.Errorf("BackEdges() = %v, want [[b a]]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (graph must not change)", g.EdgeCount())
	}
}

func TestBackEdges_FourCycle(t *testing.T) {
	g := graphOf(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "A"}})

	got := BackEdges(g)
	if !slices.Equal(got, [][2]string{{"D", "A"}}) {
		t.Errorf("BackEdges() = %v, want [[D A]]", got)
	}
}

func TestBackEdges_CycleBehindSource(t *testing.T) {
	g := graphOf(t, []string{"root", "x", "y"},
		[][2]string{{"root", "x"}, {"x", "y"}, {"y", "x"}})

	got := BackEdges(g)
	if !slices.Equal(got, [][2]string{{"y", "x"}}) {
		t.Errorf("BackEdges() = %v, want [[y x]]", got)
	}
}
