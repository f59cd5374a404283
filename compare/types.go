package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/metrics"
)

// Sentinel errors for graph comparison.
var (
	// ErrGraphNil is returned if either graph is nil.
	ErrGraphNil = errors.New("compare: graph is nil")

	// ErrUnknownMetric is returned for metric names outside the closed set.
	ErrUnknownMetric = errors.New("compare: unknown metric")

	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("compare: invalid options")
)

// Metric names a figure that can be diffed between the two graphs.
type Metric string

// Supported metrics.
const (
	MetricNodeCount      Metric = "node_count"
	MetricLinkCount      Metric = "link_count"
	MetricDensity        Metric = "density"
	MetricDiameter       Metric = "diameter"
	MetricAvgDegree      Metric = "avg_degree"
	MetricAvgCloseness   Metric = "avg_closeness"
	MetricAvgBetweenness Metric = "avg_betweenness"
	MetricAvgEigenvector Metric = "avg_eigenvector"
	MetricAvgPageRank    Metric = "avg_pagerank"
)

// knownMetrics lists the supported metrics in reporting order.
var knownMetrics = []Metric{
	MetricNodeCount, MetricLinkCount, MetricDensity, MetricDiameter,
	MetricAvgDegree, MetricAvgCloseness, MetricAvgBetweenness,
	MetricAvgEigenvector, MetricAvgPageRank,
}

// ParseMetric maps a request value onto a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range knownMetrics {
		if m == k {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// ParseMetrics parses every name, stopping at the first unknown one.
func ParseMetrics(names []string) ([]Metric, error) {
	out := make([]Metric, 0, len(names))
	for _, n := range names {
		m, err := ParseMetric(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

// Options configures Compare.
type Options struct {
	// NodeFilter keeps nodes whose ID contains it (case-insensitive).
	NodeFilter string `json:"node_filter"`

	// MinWeight drops links lighter than it; 0 keeps every link.
	MinWeight int `json:"min_weight" validate:"gte=0"`

	// HighlightCommon flags nodes present in both graphs with IsCommon.
	HighlightCommon bool `json:"highlight_common"`

	// Metrics selects the figures reported in Result.MetricDeltas.
	Metrics []Metric `json:"metrics" validate:"dive,required"`

	// MetricOptions is passed to metrics.Compute when a restriction applies
	// or density or diameter is requested.
	MetricOptions []metrics.Option `json:"-"`
}

// Stats summarizes how the comparison graph differs from the original.
type Stats struct {
	OriginalNodeCount   int     `json:"originalNodeCount"`
	ComparisonNodeCount int     `json:"comparisonNodeCount"`
	OriginalLinkCount   int     `json:"originalLinkCount"`
	ComparisonLinkCount int     `json:"comparisonLinkCount"`
	NodeDifference      int     `json:"nodeDifference"`
	LinkDifference      int     `json:"linkDifference"`
	NodeChangePercent   float64 `json:"nodeChangePercent"`
	LinkChangePercent   float64 `json:"linkChangePercent"`
	CommonNodesCount    int     `json:"commonNodesCount"`
}

// Delta is one metric on both sides.
type Delta struct {
	Original      float64 `json:"original"`
	Comparison    float64 `json:"comparison"`
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
}

// Result is the output of Compare.
type Result struct {
	Original     *core.Graph      `json:"original"`
	Comparison   *core.Graph      `json:"comparison"`
	Stats        Stats            `json:"stats"`
	CommonNodes  []string         `json:"commonNodes"`
	MetricDeltas map[Metric]Delta `json:"metrics,omitempty"`
}
