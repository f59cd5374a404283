// Package bfs provides breadth-first search over a core.Adjacency view,
// returning hop distances, visit order, shortest-path counts and
// predecessor lists.
//
// The path counts (σ) and predecessor lists are exactly what Brandes'
// betweenness accumulation needs, so the metrics stage runs one BFS per
// source node.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netxplore/core"
)

// walker encapsulates mutable BFS state.
type walker struct {
	adj   *core.Adjacency
	opts  Options
	ctx   context.Context
	queue []int
	res   *Result
}

// BFS runs breadth-first search on the undirected part of adj starting at
// position start. Neighbors are expanded in ascending position order, so
// Order and Pred are deterministic.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ctx.Err() on cancellation,
// or any error returned by OnVisit.
func BFS(adj *core.Adjacency, start int, opts ...Option) (*Result, error) {
	if adj == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := adj.Len()
	if start < 0 || start >= n {
		return nil, ErrStartVertexNotFound
	}

	w := &walker{
		adj:   adj,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]int, 0, n),
		res: &Result{
			Order: make([]int, 0, n),
			Depth: make([]int, n),
			Sigma: make([]float64, n),
			Pred:  make([][]int, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}

	w.res.Depth[start] = 0
	w.res.Sigma[start] = 1
	w.queue = append(w.queue, start)

	return w.res, w.loop()
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		v := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, v)
		if err := w.opts.OnVisit(v, w.res.Depth[v]); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", v, err)
		}
		w.expand(v)
	}

	return nil
}

// expand discovers the neighbors of v, counting shortest paths through it.
func (w *walker) expand(v int) {
	next := w.res.Depth[v] + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, u := range w.adj.Neighbors[v] {
		if w.res.Depth[u] < 0 {
			w.res.Depth[u] = next
			w.queue = append(w.queue, u)
		}
		if w.res.Depth[u] == next {
			w.res.Sigma[u] += w.res.Sigma[v]
			w.res.Pred[u] = append(w.res.Pred[u], v)
		}
	}
}
