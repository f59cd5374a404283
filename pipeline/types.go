package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/compare"
	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/filter"
	"github.com/katalvlaran/netxplore/metrics"
)

// Sentinel errors for pipeline orchestration.
var (
	// ErrNilSource is returned by New when no Source is given.
	ErrNilSource = errors.New("pipeline: source is nil")

	// ErrEmptySourceID is returned when a request names no source.
	ErrEmptySourceID = errors.New("pipeline: source ID is empty")

	// ErrGraphTooLarge is returned when a filtered graph exceeds the
	// engine's node or link ceiling. It wraps metrics.ErrGraphTooLarge.
	ErrGraphTooLarge = errors.New("pipeline: graph too large")
)

// Stage names reported to the Recorder and the logger.
const (
	StageLoad      = "load"
	StageFilter    = "filter"
	StageLimits    = "limits"
	StageAnonymize = "anonymize"
	StageMetrics   = "metrics"
	StageCommunity = "communities"
	StageCompare   = "compare"
	StageCustomize = "customize"
)

// Source resolves a stored message source.
type Source interface {
	// Messages returns the messages of sourceID in chronological order.
	Messages(ctx context.Context, sourceID string) ([]core.Message, error)
}

// Recorder observes stage durations and outcomes.
type Recorder interface {
	ObserveStage(stage string, took time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Duration, error) {}

// Limits bounds graphs handed to the O(n³) stages; zero disables a bound.
type Limits struct {
	MaxNodes int
	MaxLinks int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRecorder sets the stage recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.rec = r
		}
	}
}

// WithLimits sets the size ceilings.
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithMetricOptions appends options passed to every metrics.Compute call.
func WithMetricOptions(opts ...metrics.Option) Option {
	return func(e *Engine) { e.metricOpts = append(e.metricOpts, opts...) }
}

// WithAnonymizeKey fixes the key of keyed anonymization. Without it each
// request draws a random key.
func WithAnonymizeKey(key string) Option {
	return func(e *Engine) { e.anonKey = key }
}

// Anonymization describes if and how node IDs are replaced.
type Anonymization struct {
	Enabled bool            `json:"anonymize"`
	Mode    anonymize.Mode  `json:"anonymize_mode,omitempty"`
	Phase   anonymize.Phase `json:"anonymize_phase,omitempty"`
}

// AnalyzeRequest asks for the annotated graph of one source.
type AnalyzeRequest struct {
	SourceID  string
	Filter    filter.Options
	Anonymize Anonymization

	// Settings, when set, also runs the customization stage.
	Settings *customize.VisualizationSettings
}

// AnalyzeResult is the annotated graph plus global figures. The graph is
// embedded so it encodes as {"nodes": ..., "links": ...}.
type AnalyzeResult struct {
	*core.Graph

	Density  float64 `json:"density"`
	Diameter int     `json:"diameter"`

	// Notes lists filter values that were replaced by safe defaults.
	Notes []string `json:"notes,omitempty"`
}

// CommunitiesRequest asks for the community partition of one source.
type CommunitiesRequest struct {
	SourceID  string
	Filter    filter.Options
	Anonymize Anonymization
	Algorithm community.Algorithm
}

// CommunitiesResult is community.Result plus filter notes.
type CommunitiesResult struct {
	*community.Result

	Notes []string `json:"notes,omitempty"`
}

// CompareRequest asks for the difference between two sources filtered the
// same way.
type CompareRequest struct {
	Original   string
	Comparison string
	Filter     filter.Options
	Anonymize  Anonymization
	Options    compare.Options
}

// CompareResult is compare.Result plus filter notes.
type CompareResult struct {
	*compare.Result

	Notes []string `json:"notes,omitempty"`
}
