package metrics

import "math"

// computeEigenvector runs power iteration x ← (A + I)x on the undirected,
// unweighted adjacency, L2-normalizing after every step. The identity shift
// keeps bipartite graphs from oscillating without changing the principal
// eigenvector. Isolated nodes start and stay at 0.
func computeEigenvector(st *state) error {
	n := st.adj.Len()
	x := make([]float64, n)
	active := false
	for i := 0; i < n; i++ {
		if len(st.adj.Neighbors[i]) > 0 {
			x[i] = 1
			active = true
		}
	}
	if !active {
		return nil
	}
	normalizeL2(x)

	next := make([]float64, n)
	tol := float64(n) * st.opts.Tolerance
	for iter := 0; iter < st.opts.MaxIterations; iter++ {
		for i := 0; i < n; i++ {
			sum := x[i]
			for _, j := range st.adj.Neighbors[i] {
				sum += x[j]
			}
			next[i] = sum
		}
		normalizeL2(next)

		var diff float64
		for i := range x {
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < tol {
			break
		}
	}

	for i := range x {
		st.g.Nodes[i].Eigenvector = x[i]
	}

	return nil
}

func normalizeL2(x []float64) {
	var sq float64
	for _, v := range x {
		sq += v * v
	}
	if sq == 0 {
		return
	}
	norm := math.Sqrt(sq)
	for i := range x {
		x[i] /= norm
	}
}
