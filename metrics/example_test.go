package metrics_test

import (
	"fmt"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/metrics"
)

// ExampleCompute annotates a three-person reply chain.
func ExampleCompute() {
	b := core.NewBuilder()
	_ = b.AddLink("A", "B", 2)
	_ = b.AddLink("B", "C", 1)

	res, err := metrics.Compute(b.Graph())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("density=%.4f diameter=%d\n", res.Density, res.Diameter)
	for _, n := range res.Graph.Nodes {
		fmt.Printf("%s degree=%d closeness=%.3f betweenness=%.1f\n", n.ID, n.Degree, n.Closeness, n.Betweenness)
	}

	// Output:
	// density=0.6667 diameter=2
	// A degree=1 closeness=0.333 betweenness=0.0
	// B degree=2 closeness=0.500 betweenness=1.0
	// C degree=1 closeness=0.333 betweenness=0.0
}
