package metrics

import (
	"github.com/katalvlaran/netxplore/bfs"
)

// computeBetweenness runs Brandes' algorithm on the undirected view.
//
// Each unordered pair is reached from both ends, so the raw sum counts it
// twice; dividing by (n-1)(n-2) therefore yields the usual undirected
// normalization into [0,1]. Graphs with fewer than three nodes score 0.
func computeBetweenness(st *state) error {
	n := st.adj.Len()
	if n < 3 {
		return nil
	}

	cb := make([]float64, n)
	delta := make([]float64, n)
	for s := 0; s < n; s++ {
		res, err := bfs.BFS(st.adj, s, bfs.WithContext(st.opts.Ctx))
		if err != nil {
			return err
		}
		accumulate(s, res, delta, cb)
	}

	norm := float64((n - 1) * (n - 2))
	for i := range cb {
		st.g.Nodes[i].Betweenness = cb[i] / norm
	}

	return nil
}

// accumulate back-propagates dependencies in reverse BFS order.
func accumulate(s int, res *bfs.Result, delta, cb []float64) {
	for _, v := range res.Order {
		delta[v] = 0
	}
	for k := len(res.Order) - 1; k >= 0; k-- {
		w := res.Order[k]
		coeff := (1 + delta[w]) / res.Sigma[w]
		for _, v := range res.Pred[w] {
			delta[v] += res.Sigma[v] * coeff
		}
		if w != s {
			cb[w] += delta[w]
		}
	}
}
