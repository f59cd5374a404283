// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// Adjacency is an index-based view of a Graph.
//
// Positions match g.Nodes. The undirected part (Neighbors, Weights) merges
// u→v and v→u into one symmetric entry whose weight is the sum of both
// directions; self-loops are dropped. The directed part (Out, OutWeights)
// keeps link orientation and is used by PageRank.
type Adjacency struct {
	// IDs maps position → node ID.
	IDs []string

	// Neighbors[i] lists undirected neighbors of i in ascending order.
	Neighbors [][]int

	// Weights[i][k] is the folded weight between i and Neighbors[i][k].
	Weights [][]float64

	// Out[i] lists targets of links leaving i in ascending order.
	Out [][]int

	// OutWeights[i][k] is the weight of i → Out[i][k].
	OutWeights [][]float64
}

// NewAdjacency builds the adjacency view of g.
// Returns ErrDanglingLink if a link references an unknown node.
// Complexity: O(V + E log E).
func NewAdjacency(g *Graph) (*Adjacency, error) {
	n := len(g.Nodes)
	idx := g.IndexByID()
	und := make([]map[int]float64, n)
	dir := make([]map[int]float64, n)
	for i := 0; i < n; i++ {
		und[i] = make(map[int]float64)
		dir[i] = make(map[int]float64)
	}

	for _, l := range g.Links {
		s, ok := idx[l.Source]
		if !ok {
			return nil, fmt.Errorf("source %q: %w", l.Source, ErrDanglingLink)
		}
		t, ok := idx[l.Target]
		if !ok {
			return nil, fmt.Errorf("target %q: %w", l.Target, ErrDanglingLink)
		}
		if s == t {
			continue
		}
		w := float64(l.Weight)
		und[s][t] += w
		und[t][s] += w
		dir[s][t] += w
	}

	a := &Adjacency{
		IDs:        g.NodeIDs(),
		Neighbors:  make([][]int, n),
		Weights:    make([][]float64, n),
		Out:        make([][]int, n),
		OutWeights: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		a.Neighbors[i], a.Weights[i] = flatten(und[i])
		a.Out[i], a.OutWeights[i] = flatten(dir[i])
	}

	return a, nil
}

// flatten turns a position→weight map into parallel sorted slices.
func flatten(m map[int]float64) ([]int, []float64) {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = m[k]
	}

	return keys, ws
}

// Len returns the number of nodes.
func (a *Adjacency) Len() int {
	return len(a.IDs)
}

// Pairs returns the number of distinct unordered, non-loop node pairs
// joined by at least one link.
func (a *Adjacency) Pairs() int {
	total := 0
	for _, nb := range a.Neighbors {
		total += len(nb)
	}

	return total / 2
}

// TotalWeight returns the sum of undirected edge weights (each pair once).
func (a *Adjacency) TotalWeight() float64 {
	var sum float64
	for _, ws := range a.Weights {
		for _, w := range ws {
			sum += w
		}
	}

	return sum / 2
}
