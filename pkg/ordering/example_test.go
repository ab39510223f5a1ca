package ordering_test

import (
	"fmt"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/ordering"
)

func ExampleBarycentric() {
	// Two science courses feed a math and a science course crosswise.
	g, _ := catalog.Build(
		[]string{"S101", "S102", "M201", "S201"},
		[]catalog.Requisite{
			{Course: "M201", Requisite: "S101", Primary: true},
			{Course: "S201", Requisite: "S102", Primary: true},
		},
		catalog.BuildOptions{},
	)
	layers := [][]string{{"S101", "S102"}, {"M201", "S201"}}

	orderer := ordering.Barycentric{Seed: ordering.DefaultSeedRule()}
	seeded := ordering.Seed(g, layers, orderer.Seed).Layers(layers)
	ordered := orderer.Order(g, layers).Layers(layers)

	fmt.Println("Seeded:", seeded, "crossings:", dag.CountCrossings(g, seeded))
	fmt.Println("Ordered:", ordered, "crossings:", dag.CountCrossings(g, ordered))
	// Output:
	// Seeded: [[S101 S102] [S201 M201]] crossings: 1
	// Ordered: [[S101 S102] [M201 S201]] crossings: 0
}
