package community_test

import (
	"fmt"

	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/core"
)

// ExampleDetect splits two separate chats into two communities.
func ExampleDetect() {
	b := core.NewBuilder()
	for _, p := range [][2]string{
		{"ann", "ben"}, {"ben", "cat"}, {"cat", "ann"},
		{"dan", "eve"}, {"eve", "fay"}, {"fay", "dan"},
	} {
		_ = b.AddLink(p[0], p[1], 1)
	}

	res, _ := community.Detect(b.Graph())
	for _, c := range res.Communities {
		fmt.Println(c.ID, c.Size, c.Nodes)
	}
	fmt.Printf("modularity=%.2f\n", res.Modularity)

	// Output:
	// 0 3 [ann ben cat]
	// 1 3 [dan eve fay]
	// modularity=0.50
}
