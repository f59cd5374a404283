// SPDX-License-Identifier: MIT

package community

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/core"
)

// Detect partitions the nodes of g into communities.
//
// The graph is treated as undirected and weight-aware: A→B and B→A fold into
// one edge whose weight is their sum. Community IDs run 0..k-1 in order of
// first appearance while walking g.Nodes, so identical input always yields
// identical IDs. Every node, including isolated ones, receives exactly one
// community; an empty graph yields no communities.
//
// Per-community averages read the Betweenness and PageRank fields already on
// the nodes, so run metrics.Compute first when those figures matter.
//
// Errors: ErrGraphNil, ErrUnknownAlgorithm, ErrOptionViolation,
// core.ErrDanglingLink, or ctx.Err() between passes.
func Detect(g *core.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	detect, ok := detectors[o.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, o.Algorithm)
	}

	adj, err := core.NewAdjacency(g)
	if err != nil {
		return nil, fmt.Errorf("community: %w", err)
	}
	labels, levels, err := detect(adj, o)
	if err != nil {
		return nil, err
	}
	labels, k := relabel(labels)

	out := g.Clone()
	res := &Result{
		Graph:       out,
		Communities: make([]Community, k),
		Nodes:       make([]Assignment, len(out.Nodes)),
		Modularity:  Modularity(adj, labels, o.Resolution),
		Algorithm:   o.Algorithm,
		Levels:      levels,
	}
	for c := range res.Communities {
		res.Communities[c].ID = c
	}
	for i := range out.Nodes {
		n := &out.Nodes[i]
		c := labels[i]
		n.Community = core.IntPtr(c)
		res.Nodes[i] = Assignment{ID: n.ID, Community: c}

		cm := &res.Communities[c]
		cm.Size++
		cm.Nodes = append(cm.Nodes, n.ID)
		cm.AvgBetweenness += n.Betweenness
		cm.AvgPageRank += n.PageRank
	}
	for c := range res.Communities {
		cm := &res.Communities[c]
		cm.AvgBetweenness /= float64(cm.Size)
		cm.AvgPageRank /= float64(cm.Size)
	}

	o.Logger.Debug("communities detected",
		zap.String("algorithm", string(o.Algorithm)),
		zap.Int("communities", k),
		zap.Float64("modularity", res.Modularity))

	return res, nil
}
