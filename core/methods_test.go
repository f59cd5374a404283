package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/core"
)

// buildChain builds A→B→C with B→C seen twice.
func buildChain(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddLink("A", "B", 1))
	require.NoError(t, b.AddLink("B", "C", 1))
	require.NoError(t, b.AddLink("B", "C", 1))

	return b.Graph()
}

func TestBuilder_FoldsRepeatedPairs(t *testing.T) {
	g := buildChain(t)

	require.Equal(t, []string{"A", "B", "C"}, g.NodeIDs())
	require.Len(t, g.Links, 2)
	assert.Equal(t, core.Link{Source: "B", Target: "C", Weight: 2}, g.Links[1])
}

func TestBuilder_IgnoresSelfLoopsAndRejectsBadInput(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddLink("A", "A", 1))
	require.ErrorIs(t, b.AddLink("", "B", 1), core.ErrEmptyNodeID)
	require.ErrorIs(t, b.AddLink("A", "B", 0), core.ErrBadWeight)
	require.NoError(t, b.CountMessage("A"))
	require.NoError(t, b.CountMessage("A"))

	g := b.Graph()
	require.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Links)
	assert.Equal(t, 2, g.Nodes[0].Messages)
	assert.True(t, b.Has("A"))
	assert.False(t, b.Has("B"))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		g    core.Graph
		want error
	}{
		{"valid", *buildChainNoT(), nil},
		{"empty id", core.Graph{Nodes: []core.Node{{ID: ""}}}, core.ErrEmptyNodeID},
		{"duplicate", core.Graph{Nodes: []core.Node{{ID: "A"}, {ID: "A"}}}, core.ErrDuplicateNode},
		{"dangling", core.Graph{
			Nodes: []core.Node{{ID: "A"}},
			Links: []core.Link{{Source: "A", Target: "Z", Weight: 1}},
		}, core.ErrDanglingLink},
		{"weight", core.Graph{
			Nodes: []core.Node{{ID: "A"}, {ID: "B"}},
			Links: []core.Link{{Source: "A", Target: "B", Weight: 0}},
		}, core.ErrBadWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.g.Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func buildChainNoT() *core.Graph {
	b := core.NewBuilder()
	_ = b.AddLink("A", "B", 1)
	_ = b.AddLink("B", "C", 1)

	return b.Graph()
}

func TestClone_IsDeep(t *testing.T) {
	g := buildChain(t)
	g.Nodes[0].Community = core.IntPtr(3)

	c := g.Clone()
	c.Nodes[0].Messages = 99
	*c.Nodes[0].Community = 7
	c.Links[0].Weight = 42

	assert.Equal(t, 0, g.Nodes[0].Messages)
	assert.Equal(t, 3, *g.Nodes[0].Community)
	assert.Equal(t, 1, g.Links[0].Weight)
}

func TestSubgraph_DropsLinksToRemovedNodes(t *testing.T) {
	g := buildChain(t)
	sub := g.Subgraph(func(n core.Node) bool { return n.ID != "C" })

	require.Equal(t, []string{"A", "B"}, sub.NodeIDs())
	require.Len(t, sub.Links, 1)
	require.NoError(t, sub.Validate())
}

func TestDropDangling(t *testing.T) {
	g := &core.Graph{
		Nodes: []core.Node{{ID: "A"}, {ID: "B"}},
		Links: []core.Link{
			{Source: "A", Target: "B", Weight: 1},
			{Source: "A", Target: "X", Weight: 1},
		},
	}
	out, dropped := g.DropDangling()
	assert.Equal(t, 1, dropped)
	assert.Len(t, out.Links, 1)
	assert.Len(t, g.Links, 2, "source must stay untouched")
}

func TestLookup(t *testing.T) {
	g := buildChain(t)
	n, err := g.Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, "B", n.ID)

	_, err = g.Lookup("nope")
	require.ErrorIs(t, err, core.ErrNodeNotFound)
}
