// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"github.com/katalvlaran/netxplore/core"
)

const opHopDistances = "HopDistances"

// HopDistances returns the unweighted, undirected all-pairs distance table of
// adj: entry (i,j) is the minimum number of hops between i and j, 0 on the
// diagonal and +Inf when j is unreachable from i.
//
// Implementation:
//   - Stage 1: write 1 for every undirected neighbor pair.
//   - Stage 2: initDistancesInPlace turns the 0/1 adjacency into a distance seed.
//   - Stage 3: FloydWarshall closes it.
//
// Complexity: O(n^3) time, O(n^2) memory.
func HopDistances(adj *core.Adjacency) (*Dense, error) {
	if adj == nil {
		return nil, matrixErrorf(opHopDistances, ErrNilAdjacency)
	}
	n := adj.Len()
	d, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opHopDistances, err)
	}
	for i, nbrs := range adj.Neighbors {
		for _, j := range nbrs {
			d.data[i*n+j] = 1
		}
	}
	if err = initDistancesInPlace(d); err != nil {
		return nil, matrixErrorf(opHopDistances, err)
	}
	if err = FloydWarshall(d); err != nil {
		return nil, err
	}

	return d, nil
}

// MaxFinite returns the largest finite off-diagonal entry of d, or 0 when
// there is none. On a distance table this is the graph diameter restricted
// to reachable pairs.
func MaxFinite(d *Dense) float64 {
	var best float64
	n := d.r
	for i := 0; i < n; i++ {
		for j := 0; j < d.c; j++ {
			if i == j {
				continue
			}
			v := d.data[i*d.c+j]
			if !math.IsInf(v, 1) && v > best {
				best = v
			}
		}
	}

	return best
}
