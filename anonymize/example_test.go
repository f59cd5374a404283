package anonymize_test

import (
	"fmt"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/core"
)

func ExampleApply() {
	b := core.NewBuilder()
	_ = b.AddLink("alice", "bob", 3)
	_ = b.AddLink("bob", "carol", 1)

	g, m, _ := anonymize.Apply(b.Graph())
	for _, l := range g.Links {
		fmt.Println(l.Source, "->", l.Target, l.Weight)
	}
	alias, _ := m.Alias("carol")
	fmt.Println("carol is", alias)

	// Output:
	// User_1 -> User_2 3
	// User_2 -> User_3 1
	// carol is User_3
}
