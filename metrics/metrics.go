// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/matrix"
)

// state is shared by the metric passes of one Compute call.
type state struct {
	opts Options
	g    *core.Graph
	adj  *core.Adjacency
	dist *matrix.Dense
	res  *Result
}

// pass is one metric computation over the shared state.
type pass struct {
	name string
	run  func(*state) error
}

// passes run in this order; distances must precede closeness and diameter.
var passes = []pass{
	{"degree", computeDegree},
	{"distances", computeDistances},
	{"closeness", computeCloseness},
	{"betweenness", computeBetweenness},
	{"eigenvector", computeEigenvector},
	{"pagerank", computePageRank},
	{"density", computeDensity},
}

// Check verifies the size ceilings of opts against g without computing
// anything. It returns ErrGraphTooLarge when a ceiling is exceeded.
func Check(g *core.Graph, maxNodes, maxLinks int) error {
	if maxNodes > 0 && len(g.Nodes) > maxNodes {
		return fmt.Errorf("%w: %d nodes > %d", ErrGraphTooLarge, len(g.Nodes), maxNodes)
	}
	if maxLinks > 0 && len(g.Links) > maxLinks {
		return fmt.Errorf("%w: %d links > %d", ErrGraphTooLarge, len(g.Links), maxLinks)
	}

	return nil
}

// Compute annotates a copy of g with degree, closeness, betweenness,
// eigenvector and PageRank values and derives density and diameter.
//
// Conventions:
//   - Degree fields are raw link counts (weights ignored); Degree = In + Out.
//   - Closeness, betweenness and eigenvector treat the graph as undirected
//     and unweighted; PageRank follows link direction and weight.
//   - Closeness, betweenness, eigenvector and PageRank lie in [0,1].
//   - Graphs with fewer than two nodes get all-zero metrics (PageRank 1 for
//     a single node), density 0 and diameter 0.
//
// Errors: ErrGraphNil, ErrOptionViolation, ErrGraphTooLarge,
// core.ErrDanglingLink (unless WithDropDangling), or ctx.Err() when the
// context is done at a pass boundary.
//
// Complexity: O(V³) for the distance table, O(V·E) for betweenness,
// O(I·(V+E)) for the power iterations.
func Compute(g *core.Graph, opts ...Option) (*Result, error) {
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
	if err := Check(g, o.MaxNodes, o.MaxLinks); err != nil {
		return nil, err
	}

	st := &state{opts: o, g: g.Clone(), res: &Result{}}
	adj, err := core.NewAdjacency(st.g)
	if errors.Is(err, core.ErrDanglingLink) && o.DropDangling {
		st.g, st.res.DroppedLinks = st.g.DropDangling()
		o.Logger.Warn("dropped dangling links",
			zap.Int("dropped", st.res.DroppedLinks),
			zap.Int("remaining", len(st.g.Links)))
		adj, err = core.NewAdjacency(st.g)
	}
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	st.adj = adj
	resetMetrics(st.g)

	for _, p := range passes {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}
		start := time.Now()
		if err = p.run(st); err != nil {
			return nil, fmt.Errorf("metrics: %s: %w", p.name, err)
		}
		o.Logger.Debug("metric pass done",
			zap.String("pass", p.name),
			zap.Int("nodes", adj.Len()),
			zap.Duration("took", time.Since(start)))
	}

	st.res.Graph = st.g

	return st.res, nil
}

// resetMetrics zeroes every metric field so re-running Compute over an
// annotated graph never mixes old and new values.
func resetMetrics(g *core.Graph) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.Degree, n.InDegree, n.OutDegree = 0, 0, 0
		n.Closeness, n.Betweenness, n.Eigenvector, n.PageRank = 0, 0, 0, 0
	}
}
