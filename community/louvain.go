// SPDX-License-Identifier: MIT

package community

import (
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/core"
)

// minGain is the smallest modularity gain that counts as an improvement.
const minGain = 1e-12

// level is one (possibly aggregated) weighted undirected graph.
//
// nbrs/w exclude self-loops; loop[i] is the internal weight of super-node i
// counted over ordered pairs, so k[i] = loop[i] + Σ w[i].
type level struct {
	nbrs [][]int
	w    [][]float64
	loop []float64
	k    []float64
	m2   float64
}

func newLevel(nbrs [][]int, w [][]float64, loop []float64) *level {
	lv := &level{nbrs: nbrs, w: w, loop: loop, k: make([]float64, len(nbrs))}
	for i := range nbrs {
		lv.k[i] = loop[i]
		for _, x := range w[i] {
			lv.k[i] += x
		}
		lv.m2 += lv.k[i]
	}

	return lv
}

// louvain returns a community label per position and the number of levels
// that changed the partition.
//
// Implementation:
//   - Stage 1 (local moving): visit nodes in position order; move each into
//     the neighboring community with the largest positive gain. The current
//     community wins ties; among others the lowest label wins.
//   - Stage 2 (aggregation): collapse communities into super-nodes.
//   - Repeat until a level leaves every node in its own community.
func louvain(adj *core.Adjacency, o Options) ([]int, int, error) {
	n := adj.Len()
	member := make([]int, n)
	for i := range member {
		member[i] = i
	}
	if n == 0 {
		return member, 0, nil
	}

	lv := newLevel(adj.Neighbors, adj.Weights, make([]float64, n))
	if lv.m2 == 0 {
		return member, 0, nil
	}

	levels := 0
	for levels < o.MaxLevels {
		comm, err := localMoving(lv, o)
		if err != nil {
			return nil, 0, err
		}
		comm, k := relabel(comm)
		if k == len(lv.nbrs) {
			break
		}
		for i := range member {
			member[i] = comm[member[i]]
		}
		levels++
		o.Logger.Debug("louvain level",
			zap.Int("level", levels),
			zap.Int("communities", k))
		lv = aggregate(lv, comm, k)
	}

	return member, levels, nil
}

// localMoving runs sweeps until one makes no move or MaxPasses is hit.
func localMoving(lv *level, o Options) ([]int, error) {
	n := len(lv.nbrs)
	comm := make([]int, n)
	tot := make([]float64, n)
	for i := 0; i < n; i++ {
		comm[i] = i
		tot[i] = lv.k[i]
	}

	gamma := o.Resolution
	links := make(map[int]float64)
	cands := make([]int, 0, 8)

	for pass := 0; pass < o.MaxPasses; pass++ {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}

		moved := false
		for i := 0; i < n; i++ {
			for c := range links {
				delete(links, c)
			}
			cands = cands[:0]
			for j, v := range lv.nbrs[i] {
				c := comm[v]
				if _, seen := links[c]; !seen {
					cands = append(cands, c)
				}
				links[c] += lv.w[i][j]
			}
			sort.Ints(cands)

			own := comm[i]
			ki := lv.k[i]
			tot[own] -= ki

			best := own
			bestGain := links[own] - gamma*tot[own]*ki/lv.m2
			for _, c := range cands {
				if c == own {
					continue
				}
				g := links[c] - gamma*tot[c]*ki/lv.m2
				if g > bestGain+minGain {
					best, bestGain = c, g
				}
			}

			tot[best] += ki
			if best != own {
				comm[i] = best
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	return comm, nil
}

// relabel renumbers labels 0..k-1 by first appearance in position order.
func relabel(comm []int) ([]int, int) {
	ids := make(map[int]int)
	out := make([]int, len(comm))
	for i, c := range comm {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		out[i] = id
	}

	return out, len(ids)
}

// aggregate collapses each community of lv into one super-node.
func aggregate(lv *level, comm []int, k int) *level {
	loop := make([]float64, k)
	acc := make([]map[int]float64, k)
	for c := range acc {
		acc[c] = make(map[int]float64)
	}
	for i, nb := range lv.nbrs {
		ci := comm[i]
		loop[ci] += lv.loop[i]
		for j, v := range nb {
			cv := comm[v]
			if cv == ci {
				loop[ci] += lv.w[i][j]
				continue
			}
			acc[ci][cv] += lv.w[i][j]
		}
	}

	nbrs := make([][]int, k)
	w := make([][]float64, k)
	for c, m := range acc {
		keys := make([]int, 0, len(m))
		for v := range m {
			keys = append(keys, v)
		}
		sort.Ints(keys)
		nbrs[c] = keys
		w[c] = make([]float64, len(keys))
		for x, v := range keys {
			w[c][x] = m[v]
		}
	}

	return newLevel(nbrs, w, loop)
}

// Modularity returns the modularity of the partition labels over adj with
// the given resolution. Graphs without edges score 0.
func Modularity(adj *core.Adjacency, labels []int, resolution float64) float64 {
	lv := newLevel(adj.Neighbors, adj.Weights, make([]float64, adj.Len()))
	if lv.m2 == 0 {
		return 0
	}

	size := 0
	for _, c := range labels {
		if c+1 > size {
			size = c + 1
		}
	}
	in := make([]float64, size)
	tot := make([]float64, size)
	for i, nb := range lv.nbrs {
		tot[labels[i]] += lv.k[i]
		for j, v := range nb {
			if labels[v] == labels[i] {
				in[labels[i]] += lv.w[i][j]
			}
		}
	}

	var q float64
	for c, t := range tot {
		f := t / lv.m2
		q += in[c]/lv.m2 - resolution*f*f
	}

	return q
}
