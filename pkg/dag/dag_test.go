package dag

import (
	"errors"
	"slices"
	"testing"
)

func buildChain(t *testing.T, ids ...string) *DAG {
	t.Helper()
	g := New(nil)
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddEdge(Edge{From: ids[i], To: ids[i+1]}); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", ids[i], ids[i+1], err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	_ = g.AddNode(Node{ID: "S101"})
	if err := g.AddNode(Node{ID: "S101"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want %v", err, ErrDuplicateNodeID)
	}
	if n, _ := g.Node("S101"); n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := buildChain(t, "A", "B")
	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"unknown source", Edge{From: "X", To: "B"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "A", To: "X"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "A", To: "A"}, ErrSelfLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestInsertionOrder(t *testing.T) {
	ids := []string{"S308", "M101", "S101", "D200", "A100"}
	g := New(nil)
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	if got := g.NodeIDs(); !slices.Equal(got, ids) {
		t.Errorf("NodeIDs() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, ids) {
		t.Errorf("Sources() = %v, want %v", got, ids)
	}
}

func TestDegreesAndEdges(t *testing.T) {
	g := buildChain(t, "A", "B", "C")
	if !g.HasEdge("A", "B") || g.HasEdge("B", "A") {
		t.Error("HasEdge() direction mismatch")
	}
	if g.Degree("B") != 2 {
		t.Errorf("Degree(B) = %d, want 2", g.Degree("B"))
	}
	if e := g.Edge("B", "C"); e == nil || e.Meta == nil {
		t.Error("Edge(B, C) should exist with initialized meta")
	}
	if e := g.Edge("C", "A"); e != nil {
		t.Errorf("Edge(C, A) = %v, want nil", e)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Sources() = %v, want [A]", got)
	}
}

func TestSetRows(t *testing.T) {
	g := buildChain(t, "A", "B", "C")
	g.SetRows(map[string]int{"A": 0, "B": 1, "C": 5, "Z": 9})

	want := map[string]int{"A": 0, "B": 1, "C": 5}
	for id, row := range want {
		if n, _ := g.Node(id); n.Row != row {
			t.Errorf("Row(%s) = %d, want %d", id, n.Row, row)
		}
	}
	if _, ok := g.Node("Z"); ok {
		t.Error("SetRows must not add nodes")
	}

	g.SetRows(map[string]int{"C": 1})
	if n, _ := g.Node("B"); n.Row != 1 {
		t.Errorf("Row(B) = %d, want unchanged 1", n.Row)
	}
	if n, _ := g.Node("C"); n.Row != 1 {
		t.Errorf("Row(C) = %d, want 1", n.Row)
	}
}

func TestNodeKind(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "S101"})
	_ = g.AddNode(Node{ID: "S999", Kind: NodeKindImplicit})

	declared, _ := g.Node("S101")
	implicit, _ := g.Node("S999")
	if declared.IsImplicit() || !implicit.IsImplicit() {
		t.Errorf("IsImplicit() = %v/%v, want false/true", declared.IsImplicit(), implicit.IsImplicit())
	}
	if implicit.Kind.String() != "implicit" {
		t.Errorf("Kind.String() = %q, want implicit", implicit.Kind.String())
	}
}

func TestCountLayerCrossings(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "z"})
	_ = g.AddEdge(Edge{From: "b", To: "y"})
	_ = g.AddEdge(Edge{From: "c", To: "x"})

	tests := []struct {
		name         string
		upper, lower []string
		want         int
	}{
		{"fully inverted", []string{"a", "b", "c"}, []string{"x", "y", "z"}, 3},
		{"aligned", []string{"a", "b", "c"}, []string{"z", "y", "x"}, 0},
		{"one swap", []string{"a", "b", "c"}, []string{"y", "z", "x"}, 2},
		{"empty upper", nil, []string{"x"}, 0},
		{"empty lower", []string{"a"}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLayerCrossings(g, tt.upper, tt.lower); got != tt.want {
				t.Errorf("CountLayerCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountLayerCrossingsSharedEndpoint(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "x", "y"} {
		_ = g.AddNode(Node{ID: id})
	}
	// a fans out to both; b reaches x. a→y and b→x cross, a→x does not.
	_ = g.AddEdge(Edge{From: "a", To: "x"})
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})

	if got := CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}); got != 1 {
		t.Errorf("CountLayerCrossings() = %d, want 1", got)
	}
}

func TestCountLayerCrossingsReversedEdges(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "x", "y"} {
		_ = g.AddNode(Node{ID: id})
	}
	// Edges point upward, as they do inside a cycle.
	_ = g.AddEdge(Edge{From: "x", To: "b"})
	_ = g.AddEdge(Edge{From: "y", To: "a"})

	if got := CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}); got != 1 {
		t.Errorf("CountLayerCrossings() = %d, want 1", got)
	}
}

func TestCountCrossingsSkipsLongEdges(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "m", "x", "y"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})

	layers := [][]string{{"a", "b"}, {"m"}, {"x", "y"}}
	if got := CountCrossings(g, layers); got != 0 {
		t.Errorf("CountCrossings() = %d, want 0", got)
	}
	if got := CountCrossings(g, nil); got != 0 {
		t.Errorf("CountCrossings(nil) = %d, want 0", got)
	}
}

func TestPosMap(t *testing.T) {
	m := PosMap([]string{"x", "y", "z"})
	if m["x"] != 0 || m["y"] != 1 || m["z"] != 2 {
		t.Errorf("PosMap() = %v", m)
	}
	if len(PosMap(nil)) != 0 {
		t.Error("PosMap(nil) should be empty")
	}
}
