package customize

import (
	"github.com/katalvlaran/netxplore/core"
)

// scale holds per-graph maxima and resolved settings shared by strategies.
type scale struct {
	s       VisualizationSettings
	palette []string

	maxMessages    float64
	maxDegree      float64
	maxBetweenness float64
	maxPageRank    float64
}

func newScale(g *core.Graph, s VisualizationSettings, palette []string) *scale {
	sc := &scale{s: s, palette: palette}
	for _, n := range g.Nodes {
		sc.maxMessages = max(sc.maxMessages, float64(n.Messages))
		sc.maxDegree = max(sc.maxDegree, float64(n.Degree))
		sc.maxBetweenness = max(sc.maxBetweenness, n.Betweenness)
		sc.maxPageRank = max(sc.maxPageRank, n.PageRank)
	}

	return sc
}

// ratio returns v/m, or 0 when m is 0.
func ratio(v, m float64) float64 {
	if m == 0 {
		return 0
	}

	return v / m
}

// sizeStrategy computes a node size.
type sizeStrategy func(n core.Node, sc *scale) float64

// metricSize interpolates between the size bounds by value/max.
func metricSize(value func(core.Node) float64, maxOf func(*scale) float64) sizeStrategy {
	return func(n core.Node, sc *scale) float64 {
		lo, hi := sc.s.NodeSizes.Min, sc.s.NodeSizes.Max
		return lo + ratio(value(n), maxOf(sc))*(hi-lo)
	}
}

var sizeStrategies = map[SizeBy]sizeStrategy{
	SizeDefault: func(_ core.Node, sc *scale) float64 { return sc.s.NodeSizes.Min },
	SizeMessages: metricSize(
		func(n core.Node) float64 { return float64(n.Messages) },
		func(sc *scale) float64 { return sc.maxMessages }),
	SizeDegree: metricSize(
		func(n core.Node) float64 { return float64(n.Degree) },
		func(sc *scale) float64 { return sc.maxDegree }),
	SizeBetweenness: metricSize(
		func(n core.Node) float64 { return n.Betweenness },
		func(sc *scale) float64 { return sc.maxBetweenness }),
	SizePageRank: metricSize(
		func(n core.Node) float64 { return n.PageRank },
		func(sc *scale) float64 { return sc.maxPageRank }),
}

// colorStrategy computes a node color.
type colorStrategy func(n core.Node, sc *scale) (string, error)

// gradient blends GradientBase towards the accent returned for sc.
func gradient(value func(core.Node) float64, maxOf func(*scale) float64, accent func(*scale) string) colorStrategy {
	return func(n core.Node, sc *scale) (string, error) {
		return Interpolate(GradientBase, accent(sc), ratio(value(n), maxOf(sc)))
	}
}

func defaultColor(_ core.Node, sc *scale) (string, error) {
	return sc.s.CustomColors.DefaultNodeColor, nil
}

func communityColor(n core.Node, sc *scale) (string, error) {
	id, ok := n.CommunityID()
	if !ok || id < 0 {
		return sc.s.CustomColors.DefaultNodeColor, nil
	}
	if c, ok := sc.s.CommunityOverrides[id]; ok {
		return c, nil
	}
	if len(sc.palette) == 0 {
		return sc.s.CustomColors.DefaultNodeColor, nil
	}

	return sc.palette[id%len(sc.palette)], nil
}

func customColor(n core.Node, sc *scale) (string, error) {
	for _, u := range sc.s.HighlightUsers {
		if u == n.ID {
			return sc.s.CustomColors.HighlightNodeColor, nil
		}
	}

	return sc.s.CustomColors.DefaultNodeColor, nil
}

var colorStrategies = map[ColorBy]colorStrategy{
	ColorDefault:   defaultColor,
	ColorCommunity: communityColor,
	ColorDegree: gradient(
		func(n core.Node) float64 { return float64(n.Degree) },
		func(sc *scale) float64 { return sc.maxDegree },
		func(sc *scale) string { return sc.s.CustomColors.DefaultNodeColor }),
	ColorBetweenness: gradient(
		func(n core.Node) float64 { return n.Betweenness },
		func(sc *scale) float64 { return sc.maxBetweenness },
		func(*scale) string { return BetweennessColor }),
	ColorPageRank: gradient(
		func(n core.Node) float64 { return n.PageRank },
		func(sc *scale) float64 { return sc.maxPageRank },
		func(*scale) string { return PageRankColor }),
	ColorCustom: customColor,
}
