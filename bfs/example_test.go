package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/netxplore/bfs"
	"github.com/katalvlaran/netxplore/core"
)

// ExampleBFS prints hop depths from the first node of a reply chain.
func ExampleBFS() {
	b := core.NewBuilder()
	_ = b.AddLink("ann", "ben", 1)
	_ = b.AddLink("ben", "cat", 1)
	adj, _ := core.NewAdjacency(b.Graph())

	res, _ := bfs.BFS(adj, 0)
	for _, v := range res.Order {
		fmt.Println(adj.IDs[v], res.Depth[v])
	}

	// Output:
	// ann 0
	// ben 1
	// cat 2
}
