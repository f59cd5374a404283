package anonymize_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/core"
)

func chat(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddLink("alice", "bob", 2))
	require.NoError(t, b.AddLink("bob", "carol", 1))
	require.NoError(t, b.AddLink("carol", "alice", 1))
	require.NoError(t, b.CountMessage("alice"))

	return b.Graph()
}

// shape returns the links expressed through node positions.
func shape(g *core.Graph) [][3]int {
	idx := g.IndexByID()
	out := make([][3]int, len(g.Links))
	for i, l := range g.Links {
		out[i] = [3]int{idx[l.Source], idx[l.Target], l.Weight}
	}

	return out
}

func TestApply_Sequential(t *testing.T) {
	g := chat(t)
	out, m, err := anonymize.Apply(g)
	require.NoError(t, err)

	assert.Equal(t, []string{"User_1", "User_2", "User_3"}, out.NodeIDs())
	assert.Equal(t, shape(g), shape(out))
	require.NoError(t, out.Validate())
	assert.Equal(t, g.Nodes[0].Messages, out.Nodes[0].Messages)

	a, ok := m.Alias("carol")
	require.True(t, ok)
	assert.Equal(t, "User_3", a)
	_, ok = m.Alias("mallory")
	assert.False(t, ok)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"User_2", "zed"}, m.AliasAll([]string{"bob", "zed"}))

	assert.Equal(t, "alice", g.Nodes[0].ID, "input untouched")
}

func TestApply_KeyedIsStableAcrossOrder(t *testing.T) {
	g := chat(t)
	out, m, err := anonymize.Apply(g, anonymize.WithMode(anonymize.ModeKeyed), anonymize.WithKey("s3cret"))
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	assert.Equal(t, shape(g), shape(out))

	for _, id := range out.NodeIDs() {
		require.True(t, strings.HasPrefix(id, anonymize.DefaultPrefix))
		assert.Len(t, id, len(anonymize.DefaultPrefix)+8)
	}

	rev := &core.Graph{Nodes: []core.Node{{ID: "carol"}, {ID: "bob"}, {ID: "alice"}}}
	_, m2, err := anonymize.Apply(rev, anonymize.WithMode(anonymize.ModeKeyed), anonymize.WithKey("s3cret"))
	require.NoError(t, err)
	for _, id := range []string{"alice", "bob", "carol"} {
		a1, _ := m.Alias(id)
		a2, _ := m2.Alias(id)
		assert.Equal(t, a1, a2, id)
	}

	_, m3, err := anonymize.Apply(g, anonymize.WithMode(anonymize.ModeKeyed), anonymize.WithKey("other"))
	require.NoError(t, err)
	a1, _ := m.Alias("alice")
	a3, _ := m3.Alias("alice")
	assert.NotEqual(t, a1, a3, "key changes aliases")
}

// TestApply_Injective covers many IDs in both modes.
func TestApply_Injective(t *testing.T) {
	b := core.NewBuilder()
	for i := 0; i < 2000; i++ {
		_, _ = b.AddNode(fmt.Sprintf("user-%d", i))
	}
	g := b.Graph()

	for _, mode := range []anonymize.Mode{anonymize.ModeSequential, anonymize.ModeKeyed} {
		out, m, err := anonymize.Apply(g, anonymize.WithMode(mode), anonymize.WithPrefix("P"))
		require.NoError(t, err, mode)
		require.NoError(t, out.Validate(), mode)
		assert.Equal(t, len(g.Nodes), m.Len())

		seen := make(map[string]bool)
		for _, id := range out.NodeIDs() {
			require.False(t, seen[id], "%s: duplicate alias %s", mode, id)
			require.True(t, strings.HasPrefix(id, "P"))
			seen[id] = true
		}
	}
}

func TestApply_Errors(t *testing.T) {
	_, _, err := anonymize.Apply(nil)
	require.ErrorIs(t, err, anonymize.ErrGraphNil)

	_, _, err = anonymize.Apply(chat(t), anonymize.WithMode("hash"))
	require.ErrorIs(t, err, anonymize.ErrUnknownMode)

	_, _, err = anonymize.Apply(chat(t), anonymize.WithPrefix(""))
	require.ErrorIs(t, err, anonymize.ErrOptionViolation)

	g := chat(t)
	g.Links = append(g.Links, core.Link{Source: "alice", Target: "ghost", Weight: 1})
	_, _, err = anonymize.Apply(g)
	require.ErrorIs(t, err, core.ErrDanglingLink)
}

func TestParse(t *testing.T) {
	m, err := anonymize.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, anonymize.ModeSequential, m)
	m, err = anonymize.ParseMode("Keyed")
	require.NoError(t, err)
	assert.Equal(t, anonymize.ModeKeyed, m)
	_, err = anonymize.ParseMode("md5")
	require.ErrorIs(t, err, anonymize.ErrUnknownMode)

	p, err := anonymize.ParsePhase("")
	require.NoError(t, err)
	assert.Equal(t, anonymize.PhaseEarly, p)
	p, err = anonymize.ParsePhase("late")
	require.NoError(t, err)
	assert.Equal(t, anonymize.PhaseLate, p)
	_, err = anonymize.ParsePhase("never")
	require.ErrorIs(t, err, anonymize.ErrUnknownPhase)
}

func TestNewMapping_SharedAcrossGraphs(t *testing.T) {
	a := &core.Graph{Nodes: []core.Node{{ID: "ann"}, {ID: "ben"}}}
	b := &core.Graph{
		Nodes: []core.Node{{ID: "ben"}, {ID: "cat"}},
		Links: []core.Link{{Source: "cat", Target: "ben", Weight: 1}},
	}
	m, err := anonymize.NewMapping(append(a.NodeIDs(), b.NodeIDs()...))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	ra, err := m.Rewrite(a)
	require.NoError(t, err)
	rb, err := m.Rewrite(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"User_1", "User_2"}, ra.NodeIDs())
	assert.Equal(t, []string{"User_2", "User_3"}, rb.NodeIDs())
	assert.Equal(t, core.Link{Source: "User_3", Target: "User_2", Weight: 1}, rb.Links[0])

	_, err = m.Rewrite(&core.Graph{Nodes: []core.Node{{ID: "dan"}}})
	require.ErrorIs(t, err, anonymize.ErrUnmappedID)
}
