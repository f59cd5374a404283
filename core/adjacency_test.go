package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/core"
)

func TestNewAdjacency_MergesDirections(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddLink("A", "B", 2))
	require.NoError(t, b.AddLink("B", "A", 1))
	require.NoError(t, b.AddLink("B", "C", 1))
	_, _ = b.AddNode("D")

	a, err := core.NewAdjacency(b.Graph())
	require.NoError(t, err)

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []int{1}, a.Neighbors[0])
	assert.Equal(t, []float64{3}, a.Weights[0])
	assert.Equal(t, []int{0, 2}, a.Neighbors[1])
	assert.Empty(t, a.Neighbors[3])
	assert.Equal(t, []int{0, 2}, a.Out[1])
	assert.Equal(t, 2, a.Pairs())
	assert.InDelta(t, 4.0, a.TotalWeight(), 1e-12)
}

func TestNewAdjacency_Dangling(t *testing.T) {
	g := &core.Graph{
		Nodes: []core.Node{{ID: "A"}},
		Links: []core.Link{{Source: "A", Target: "B", Weight: 1}},
	}
	_, err := core.NewAdjacency(g)
	require.ErrorIs(t, err, core.ErrDanglingLink)
}
