package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/bfs"
	"github.com/katalvlaran/netxplore/core"
)

// diamond builds A-B, A-C, B-D, C-D plus an isolated E.
func diamond(t *testing.T) *core.Adjacency {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddLink("A", "B", 1))
	require.NoError(t, b.AddLink("A", "C", 1))
	require.NoError(t, b.AddLink("B", "D", 1))
	require.NoError(t, b.AddLink("D", "C", 1))
	_, _ = b.AddNode("E")
	adj, err := core.NewAdjacency(b.Graph())
	require.NoError(t, err)

	return adj
}

func TestBFS_CountsShortestPaths(t *testing.T) {
	res, err := bfs.BFS(diamond(t), 0)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2, 3}, res.Order)
	require.Equal(t, []int{0, 1, 1, 2, -1}, res.Depth)
	require.Equal(t, 2.0, res.Sigma[3])
	require.Equal(t, []int{1, 2}, res.Pred[3])
	require.False(t, res.Reached(4))
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 0)
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	adj := diamond(t)
	_, err = bfs.BFS(adj, 9)
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(adj, 0, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)

	boom := errors.New("boom")
	_, err = bfs.BFS(adj, 0, bfs.WithOnVisit(func(v, _ int) error {
		if v == 2 {
			return boom
		}
		return nil
	}))
	require.ErrorIs(t, err, boom)
}

func TestBFS_MaxDepthAndCancel(t *testing.T) {
	adj := diamond(t)
	res, err := bfs.BFS(adj, 0, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, res.Order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(adj, 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
