package metrics_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/metrics"
)

const eps = 1e-9

// MetricsSuite exercises Compute on small hand-checked graphs.
type MetricsSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}

// graphOf builds a graph from (source, target, weight) triples.
func graphOf(links ...[3]any) *core.Graph {
	b := core.NewBuilder()
	for _, l := range links {
		_ = b.AddLink(l[0].(string), l[1].(string), l[2].(int))
	}

	return b.Graph()
}

func node(g *core.Graph, id string) core.Node {
	n, err := g.Lookup(id)
	if err != nil {
		panic(err)
	}

	return n
}

// TestChainOfThree checks the three-node chain A→B(2), B→C(1).
func (s *MetricsSuite) TestChainOfThree() {
	g := graphOf([3]any{"A", "B", 2}, [3]any{"B", "C", 1})
	res, err := metrics.Compute(g)
	require.NoError(s.T(), err)

	require.InDelta(s.T(), 0.6667, res.Density, 1e-4)
	require.Equal(s.T(), 2, res.Diameter)

	out := res.Graph
	require.Equal(s.T(), 1, node(out, "A").Degree)
	require.Equal(s.T(), 2, node(out, "B").Degree)
	require.Equal(s.T(), 1, node(out, "C").Degree)
	require.Equal(s.T(), 1, node(out, "B").InDegree)
	require.Equal(s.T(), 1, node(out, "B").OutDegree)

	require.InDelta(s.T(), 1.0/3, node(out, "A").Closeness, eps)
	require.InDelta(s.T(), 0.5, node(out, "B").Closeness, eps)

	require.InDelta(s.T(), 1.0, node(out, "B").Betweenness, eps)
	require.InDelta(s.T(), 0.0, node(out, "A").Betweenness, eps)

	require.Greater(s.T(), node(out, "B").Eigenvector, node(out, "A").Eigenvector)
	require.InDelta(s.T(), node(out, "A").Eigenvector, node(out, "C").Eigenvector, 1e-6)

	// C only receives, so it ranks highest
	require.Greater(s.T(), node(out, "C").PageRank, node(out, "A").PageRank)

	// input untouched
	require.Zero(s.T(), g.Nodes[1].Degree)
}

// TestEmptyGraph checks that no nodes give zero density and diameter.
func (s *MetricsSuite) TestEmptyGraph() {
	res, err := metrics.Compute(core.NewGraph())
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Density)
	require.Zero(s.T(), res.Diameter)
	require.Empty(s.T(), res.Graph.Nodes)
}

// TestSingleNode checks the degenerate one-node graph.
func (s *MetricsSuite) TestSingleNode() {
	b := core.NewBuilder()
	_, _ = b.AddNode("solo")
	res, err := metrics.Compute(b.Graph())
	require.NoError(s.T(), err)

	n := res.Graph.Nodes[0]
	require.Zero(s.T(), n.Degree)
	require.Zero(s.T(), n.Closeness)
	require.Zero(s.T(), n.Betweenness)
	require.Zero(s.T(), n.Eigenvector)
	require.InDelta(s.T(), 1.0, n.PageRank, eps)
	require.Zero(s.T(), res.Density)
	require.Zero(s.T(), res.Diameter)
}

// TestDisjointTrianglesHaveNoBetweenness covers the betweenness half of
// the two-triangle scenario.
func (s *MetricsSuite) TestDisjointTrianglesHaveNoBetweenness() {
	g := graphOf(
		[3]any{"a1", "a2", 1}, [3]any{"a2", "a3", 1}, [3]any{"a3", "a1", 1},
		[3]any{"b1", "b2", 1}, [3]any{"b2", "b3", 1}, [3]any{"b3", "b1", 1},
	)
	res, err := metrics.Compute(g)
	require.NoError(s.T(), err)
	for _, n := range res.Graph.Nodes {
		require.Zero(s.T(), n.Betweenness, n.ID)
		require.InDelta(s.T(), 0.5, n.Closeness, eps, n.ID)
		require.InDelta(s.T(), 1/math.Sqrt(6), n.Eigenvector, 1e-6, n.ID)
	}
	require.Equal(s.T(), 1, res.Diameter)
	require.InDelta(s.T(), 6.0/15, res.Density, eps)
}

// TestStarBetweenness checks that the hub of a star carries every path.
func (s *MetricsSuite) TestStarBetweenness() {
	g := graphOf([3]any{"hub", "x", 1}, [3]any{"y", "hub", 1}, [3]any{"hub", "z", 1}, [3]any{"w", "hub", 1})
	res, err := metrics.Compute(g)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.0, node(res.Graph, "hub").Betweenness, eps)
	require.InDelta(s.T(), 0.0, node(res.Graph, "x").Betweenness, eps)
	require.Equal(s.T(), 2, res.Diameter)
}

// TestReciprocalLinksKeepDensityBounded checks A⇄B counts as one pair.
func (s *MetricsSuite) TestReciprocalLinksKeepDensityBounded() {
	g := graphOf([3]any{"A", "B", 1}, [3]any{"B", "A", 4})
	res, err := metrics.Compute(g)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.0, res.Density, eps)
	require.Equal(s.T(), 2, node(res.Graph, "A").Degree)
}

// TestPageRankFollowsWeight checks that heavier links pass more rank.
func (s *MetricsSuite) TestPageRankFollowsWeight() {
	g := graphOf([3]any{"src", "heavy", 9}, [3]any{"src", "light", 1})
	res, err := metrics.Compute(g)
	require.NoError(s.T(), err)
	require.Greater(s.T(), node(res.Graph, "heavy").PageRank, node(res.Graph, "light").PageRank)
}

func (s *MetricsSuite) TestErrors() {
	_, err := metrics.Compute(nil)
	require.ErrorIs(s.T(), err, metrics.ErrGraphNil)

	g := graphOf([3]any{"A", "B", 1}, [3]any{"B", "C", 1})
	_, err = metrics.Compute(g, metrics.WithLimits(2, 0))
	require.ErrorIs(s.T(), err, metrics.ErrGraphTooLarge)
	_, err = metrics.Compute(g, metrics.WithLimits(0, 1))
	require.ErrorIs(s.T(), err, metrics.ErrGraphTooLarge)

	for _, opt := range []metrics.Option{
		metrics.WithLimits(-1, 0),
		metrics.WithDamping(1),
		metrics.WithTolerance(0),
		metrics.WithMaxIterations(0),
	} {
		_, err = metrics.Compute(g, opt)
		require.ErrorIs(s.T(), err, metrics.ErrOptionViolation)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = metrics.Compute(g, metrics.WithContext(ctx))
	require.ErrorIs(s.T(), err, context.Canceled)
}

func (s *MetricsSuite) TestDanglingLinks() {
	g := &core.Graph{
		Nodes: []core.Node{{ID: "A"}, {ID: "B"}},
		Links: []core.Link{
			{Source: "A", Target: "B", Weight: 1},
			{Source: "B", Target: "ghost", Weight: 1},
		},
	}

	_, err := metrics.Compute(g)
	require.ErrorIs(s.T(), err, core.ErrDanglingLink)

	obs, logs := observer.New(zapcore.WarnLevel)
	res, err := metrics.Compute(g, metrics.WithDropDangling(true), metrics.WithLogger(zap.New(obs)))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.DroppedLinks)
	require.Len(s.T(), res.Graph.Links, 1)
	require.Equal(s.T(), 1, logs.FilterMessage("dropped dangling links").Len())
}

// TestRecomputeIsStable checks that Compute over its own output matches.
func (s *MetricsSuite) TestRecomputeIsStable() {
	g := graphOf([3]any{"A", "B", 1}, [3]any{"B", "C", 2}, [3]any{"C", "A", 1}, [3]any{"C", "D", 1})
	first, err := metrics.Compute(g)
	require.NoError(s.T(), err)
	second, err := metrics.Compute(first.Graph)
	require.NoError(s.T(), err)
	require.Equal(s.T(), first.Graph, second.Graph)
}

// randomGraph builds a reproducible random interaction graph.
func randomGraph(r *rand.Rand, n, m int) *core.Graph {
	b := core.NewBuilder()
	for i := 0; i < n; i++ {
		_, _ = b.AddNode(fmt.Sprintf("u%d", i))
	}
	for k := 0; k < m; k++ {
		from, to := r.Intn(n), r.Intn(n)
		_ = b.AddLink(fmt.Sprintf("u%d", from), fmt.Sprintf("u%d", to), 1+r.Intn(3))
	}

	return b.Graph()
}

// TestInvariants checks global properties on random graphs.
func TestInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		n := r.Intn(12)
		m := r.Intn(3*n + 1)
		g := randomGraph(r, max(n, 1), m)

		res, err := metrics.Compute(g)
		require.NoError(t, err)

		require.GreaterOrEqual(t, res.Density, 0.0)
		require.LessOrEqual(t, res.Density, 1.0)
		require.GreaterOrEqual(t, res.Diameter, 0)
		if len(g.Links) == 0 || len(g.Nodes) < 2 {
			require.Zero(t, res.Diameter)
		}

		outSum := 0
		var prSum float64
		for _, nd := range res.Graph.Nodes {
			outSum += nd.OutDegree
			prSum += nd.PageRank
			require.Equal(t, nd.InDegree+nd.OutDegree, nd.Degree)
			for _, v := range []float64{nd.Closeness, nd.Betweenness, nd.Eigenvector, nd.PageRank} {
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 1.0+1e-9)
			}
		}
		require.Equal(t, len(res.Graph.Links), outSum)
		require.InDelta(t, 1.0, prSum, 1e-9)
	}
}
