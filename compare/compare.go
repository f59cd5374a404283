// Package compare diffs two independently filtered interaction graphs.
//
// Compare first restricts both graphs the same way (node substring filter,
// then minimum link weight), then reports node and link counts, their
// differences and percent changes, the set of node IDs present on both
// sides and, on request, deltas of global and averaged node metrics.
//
// Percent changes are difference / original × 100, rounded to two
// decimals, and 0 when the original count is 0.
package compare

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/metrics"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Compare restricts both graphs under opts and reports their differences.
// The inputs are not modified.
//
// When NodeFilter or MinWeight is set, the node metrics of both restricted
// graphs are recomputed so they describe the returned graphs. IsCommon is
// cleared on every node unless HighlightCommon is set.
//
// Errors: ErrGraphNil, ErrInvalidOptions, ErrUnknownMetric, or any error of
// metrics.Compute when a restriction applies or density or diameter is
// requested.
func Compare(original, comparison *core.Graph, opts Options) (*Result, error) {
	if original == nil || comparison == nil {
		return nil, ErrGraphNil
	}
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	for _, m := range opts.Metrics {
		if _, err := ParseMetric(string(m)); err != nil {
			return nil, err
		}
	}

	orig := restrict(original, opts)
	comp := restrict(comparison, opts)

	// Restriction invalidates the node metrics, so recompute them on the
	// restricted copies and reuse the results for the deltas.
	var origRes, compRes *metrics.Result
	if restricts(opts) || needsGlobal(opts.Metrics) {
		var err error
		if origRes, err = metrics.Compute(orig, opts.MetricOptions...); err != nil {
			return nil, fmt.Errorf("compare: original: %w", err)
		}
		if compRes, err = metrics.Compute(comp, opts.MetricOptions...); err != nil {
			return nil, fmt.Errorf("compare: comparison: %w", err)
		}
		if restricts(opts) {
			orig, comp = origRes.Graph, compRes.Graph
		}
	}

	common := commonIDs(orig, comp)
	if opts.HighlightCommon {
		markCommon(orig, common)
		markCommon(comp, common)
	} else {
		markCommon(orig, nil)
		markCommon(comp, nil)
	}

	res := &Result{
		Original:    orig,
		Comparison:  comp,
		Stats:       stats(orig, comp, len(common)),
		CommonNodes: common,
	}
	if len(opts.Metrics) > 0 {
		res.MetricDeltas = metricDeltas(orig, comp, origRes, compRes, opts.Metrics)
	}

	return res, nil
}

// restrict applies the node filter and then the weight threshold.
func restrict(g *core.Graph, opts Options) *core.Graph {
	out := g
	if opts.NodeFilter != "" {
		fold := cases.Fold()
		needle := fold.String(opts.NodeFilter)
		out = out.Subgraph(func(n core.Node) bool {
			return strings.Contains(fold.String(n.ID), needle)
		})
	}
	if opts.MinWeight > 0 {
		out = out.FilterLinks(func(l core.Link) bool { return l.Weight >= opts.MinWeight })
	}
	if out == g {
		out = g.Clone()
	}

	return out
}

// restricts reports whether opts can drop nodes or links.
func restricts(opts Options) bool {
	return opts.NodeFilter != "" || opts.MinWeight > 0
}

// needsGlobal reports whether ms asks for density or diameter.
func needsGlobal(ms []Metric) bool {
	for _, m := range ms {
		if m == MetricDensity || m == MetricDiameter {
			return true
		}
	}

	return false
}

// commonIDs returns IDs present in both graphs, in the original's order.
func commonIDs(a, b *core.Graph) []string {
	inB := b.IndexByID()
	out := make([]string, 0)
	for _, n := range a.Nodes {
		if _, ok := inB[n.ID]; ok {
			out = append(out, n.ID)
		}
	}

	return out
}

func markCommon(g *core.Graph, common []string) {
	set := make(map[string]struct{}, len(common))
	for _, id := range common {
		set[id] = struct{}{}
	}
	for i := range g.Nodes {
		_, g.Nodes[i].IsCommon = set[g.Nodes[i].ID]
	}
}

func stats(orig, comp *core.Graph, common int) Stats {
	s := Stats{
		OriginalNodeCount:   len(orig.Nodes),
		ComparisonNodeCount: len(comp.Nodes),
		OriginalLinkCount:   len(orig.Links),
		ComparisonLinkCount: len(comp.Links),
		CommonNodesCount:    common,
	}
	s.NodeDifference = s.ComparisonNodeCount - s.OriginalNodeCount
	s.LinkDifference = s.ComparisonLinkCount - s.OriginalLinkCount
	s.NodeChangePercent = percent(float64(s.NodeDifference), float64(s.OriginalNodeCount))
	s.LinkChangePercent = percent(float64(s.LinkDifference), float64(s.OriginalLinkCount))

	return s
}

// percent returns diff/base×100 rounded to two decimals, or 0 for base 0.
func percent(diff, base float64) float64 {
	if base == 0 {
		return 0
	}

	return math.Round(diff/base*100*100) / 100
}

// metricDeltas diffs ms between the two graphs. origRes and compRes must
// be set when ms contains density or diameter.
func metricDeltas(orig, comp *core.Graph, origRes, compRes *metrics.Result, ms []Metric) map[Metric]Delta {
	out := make(map[Metric]Delta, len(ms))
	for _, m := range ms {
		var a, b float64
		switch m {
		case MetricNodeCount:
			a, b = float64(len(orig.Nodes)), float64(len(comp.Nodes))
		case MetricLinkCount:
			a, b = float64(len(orig.Links)), float64(len(comp.Links))
		case MetricDensity:
			a, b = origRes.Density, compRes.Density
		case MetricDiameter:
			a, b = float64(origRes.Diameter), float64(compRes.Diameter)
		case MetricAvgDegree:
			a, b = average(orig, func(n core.Node) float64 { return float64(n.Degree) }),
				average(comp, func(n core.Node) float64 { return float64(n.Degree) })
		case MetricAvgCloseness:
			a, b = average(orig, closeness), average(comp, closeness)
		case MetricAvgBetweenness:
			a, b = average(orig, betweenness), average(comp, betweenness)
		case MetricAvgEigenvector:
			a, b = average(orig, eigenvector), average(comp, eigenvector)
		case MetricAvgPageRank:
			a, b = average(orig, pagerank), average(comp, pagerank)
		}
		out[m] = Delta{
			Original:      a,
			Comparison:    b,
			Difference:    b - a,
			PercentChange: percent(b-a, a),
		}
	}

	return out
}

func closeness(n core.Node) float64   { return n.Closeness }
func betweenness(n core.Node) float64 { return n.Betweenness }
func eigenvector(n core.Node) float64 { return n.Eigenvector }
func pagerank(n core.Node) float64    { return n.PageRank }

// average returns the mean of f over the nodes of g, or 0 for no nodes.
func average(g *core.Graph, f func(core.Node) float64) float64 {
	if len(g.Nodes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range g.Nodes {
		sum += f(n)
	}

	return sum / float64(len(g.Nodes))
}
