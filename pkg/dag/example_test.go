package dag_test

import (
	"fmt"

	"github.com/matzehuels/coursemap/pkg/dag"
)

func ExampleDAG_basic() {
	// A short prerequisite chain: S101 → S201 → S301
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "S101", Row: 0})
	_ = g.AddNode(dag.Node{ID: "S201", Row: 1})
	_ = g.AddNode(dag.Node{ID: "S301", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "S101", To: "S201"})
	_ = g.AddEdge(dag.Edge{From: "S201", To: "S301"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Sources:", dag.NodeIDs(g.Sources()))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Sources: [S101]
}

func ExampleDAG_traversal() {
	// S101 is a prerequisite for two courses
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "S101"})
	_ = g.AddNode(dag.Node{ID: "S201"})
	_ = g.AddNode(dag.Node{ID: "M201"})
	_ = g.AddEdge(dag.Edge{From: "S101", To: "S201"})
	_ = g.AddEdge(dag.Edge{From: "S101", To: "M201"})

	fmt.Println("Children of S101:", g.Children("S101"))
	fmt.Println("Parents of S201:", g.Parents("S201"))
	fmt.Println("Out-degree of S101:", g.OutDegree("S101"))
	// Output:
	// Children of S101: [S201 M201]
	// Parents of S201: [S101]
	// Out-degree of S101: 2
}

func ExampleCountCrossings() {
	g := dag.New(nil)
	for _, id := range []string{"A", "B", "X", "Y"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A", To: "Y"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "X"})

	fmt.Println("Crossed:", dag.CountCrossings(g, [][]string{{"A", "B"}, {"X", "Y"}}))
	fmt.Println("Untangled:", dag.CountCrossings(g, [][]string{{"A", "B"}, {"Y", "X"}}))
	// Output:
	// Crossed: 1
	// Untangled: 0
}

func ExampleDAG_metadata() {
	g := dag.New(dag.Metadata{"catalog": "science"})
	_ = g.AddNode(dag.Node{
		ID:   "M250",
		Kind: dag.NodeKindImplicit,
		Meta: dag.Metadata{"department": "M", "band": 200},
	})

	node, _ := g.Node("M250")
	fmt.Println("Course:", node.ID)
	fmt.Println("Kind:", node.Kind)
	fmt.Println("Band:", node.Meta["band"])
	// Output:
	// Course: M250
	// Kind: implicit
	// Band: 200
}
