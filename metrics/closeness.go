package metrics

import (
	"math"

	"github.com/katalvlaran/netxplore/matrix"
)

// computeDistances builds the hop-distance table shared by closeness and
// diameter.
func computeDistances(st *state) error {
	d, err := matrix.HopDistances(st.adj)
	if err != nil {
		return err
	}
	st.dist = d
	st.res.Diameter = int(matrix.MaxFinite(d))

	return nil
}

// computeCloseness sets closeness(v) = 1 / Σ d(v,u) over reachable u ≠ v,
// or 0 when v reaches nobody.
func computeCloseness(st *state) error {
	n := st.adj.Len()
	for i := 0; i < n; i++ {
		row, err := st.dist.Row(i)
		if err != nil {
			return err
		}
		var sum float64
		for j, d := range row {
			if j == i || math.IsInf(d, 1) {
				continue
			}
			sum += d
		}
		if sum > 0 {
			st.g.Nodes[i].Closeness = 1 / sum
		}
	}

	return nil
}
