package filter_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/filter"
)

// ExampleBuild keeps the last three messages of a short exchange.
func ExampleBuild() {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msgs := []core.Message{
		{Author: "ann", Text: "morning", Timestamp: t0},
		{Author: "ben", Text: "hi ann", Timestamp: t0.Add(time.Minute)},
		{Author: "cat", Text: "hello both", Timestamp: t0.Add(2 * time.Minute)},
		{Author: "ben", Text: "hey cat", Timestamp: t0.Add(3 * time.Minute)},
	}

	g := filter.Build(msgs, filter.Options{Limit: 3, LimitType: filter.LimitLast})
	for _, n := range g.Nodes {
		fmt.Println(n.ID, n.Messages)
	}
	for _, l := range g.Links {
		fmt.Printf("%s -> %s (%d)\n", l.Source, l.Target, l.Weight)
	}

	// Output:
	// ben 2
	// cat 1
	// ben -> cat (1)
	// cat -> ben (1)
}
