package metrics

import "math"

// computePageRank runs weighted, directed PageRank.
//
// Teleport is uniform: (1-d)/n. Mass held by nodes without outgoing links
// is spread uniformly too, so scores always sum to 1. Iteration stops when
// the L1 change drops below n·Tolerance or after MaxIterations.
func computePageRank(st *state) error {
	n := st.adj.Len()
	if n == 0 {
		return nil
	}

	d := st.opts.Damping
	outW := make([]float64, n)
	for i, ws := range st.adj.OutWeights {
		for _, w := range ws {
			outW[i] += w
		}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	tol := float64(n) * st.opts.Tolerance

	for iter := 0; iter < st.opts.MaxIterations; iter++ {
		var dangling float64
		for i := range x {
			if outW[i] == 0 {
				dangling += x[i]
			}
		}
		base := (1-d)/float64(n) + d*dangling/float64(n)
		for i := range next {
			next[i] = base
		}
		for j, targets := range st.adj.Out {
			if outW[j] == 0 {
				continue
			}
			share := d * x[j] / outW[j]
			for k, t := range targets {
				next[t] += share * st.adj.OutWeights[j][k]
			}
		}

		var diff float64
		for i := range x {
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < tol {
			break
		}
	}

	var sum float64
	for _, v := range x {
		sum += v
	}
	for i := range x {
		st.g.Nodes[i].PageRank = x[i] / sum
	}

	return nil
}
