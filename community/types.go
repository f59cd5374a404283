// SPDX-License-Identifier: MIT

package community

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/core"
)

// Sentinel errors for community detection.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("community: graph is nil")

	// ErrUnknownAlgorithm is returned for algorithm names without a detector.
	ErrUnknownAlgorithm = errors.New("community: unknown algorithm")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("community: invalid option supplied")
)

// Algorithm names a detection strategy.
type Algorithm string

// AlgorithmLouvain is greedy modularity optimization with aggregation.
const AlgorithmLouvain Algorithm = "louvain"

// detectors maps every supported Algorithm to its implementation.
var detectors = map[Algorithm]func(*core.Adjacency, Options) ([]int, int, error){
	AlgorithmLouvain: louvain,
}

// ParseAlgorithm maps a request value onto a supported Algorithm.
// The empty string selects Louvain.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if a == "" {
		return AlgorithmLouvain, nil
	}
	if _, ok := detectors[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}

	return a, nil
}

// Defaults used by DefaultOptions.
const (
	DefaultResolution = 1.0
	DefaultMaxPasses  = 100
	DefaultMaxLevels  = 32
)

// Option configures Detect via functional arguments.
type Option func(*Options)

// Options holds the tunables of Detect.
type Options struct {
	// Ctx is checked between local-moving passes.
	Ctx context.Context

	// Logger receives per-level progress at debug level.
	Logger *zap.Logger

	// Algorithm selects the detector.
	Algorithm Algorithm

	// Resolution scales the null-model term; 1 is classic modularity.
	Resolution float64

	// MaxPasses caps local-moving sweeps per level.
	MaxPasses int

	// MaxLevels caps aggregation rounds.
	MaxLevels int

	err error
}

// DefaultOptions returns Louvain with resolution 1.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Logger:     zap.NewNop(),
		Algorithm:  AlgorithmLouvain,
		Resolution: DefaultResolution,
		MaxPasses:  DefaultMaxPasses,
		MaxLevels:  DefaultMaxLevels,
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithAlgorithm selects the detector; unknown names fail with
// ErrUnknownAlgorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		if _, ok := detectors[a]; !ok {
			o.err = fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
			return
		}
		o.Algorithm = a
	}
}

// WithResolution sets the modularity resolution; it must be positive.
func WithResolution(r float64) Option {
	return func(o *Options) {
		if r <= 0 {
			o.err = fmt.Errorf("%w: resolution %v must be > 0", ErrOptionViolation, r)
			return
		}
		o.Resolution = r
	}
}

// WithMaxPasses caps local-moving sweeps per level; n must be ≥ 1.
func WithMaxPasses(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max passes %d must be >= 1", ErrOptionViolation, n)
			return
		}
		o.MaxPasses = n
	}
}

// Community summarizes one detected community.
type Community struct {
	ID             int      `json:"id"`
	Size           int      `json:"size"`
	Nodes          []string `json:"nodes"`
	AvgBetweenness float64  `json:"avg_betweenness"`
	AvgPageRank    float64  `json:"avg_pagerank"`
}

// Assignment pairs a node with its community.
type Assignment struct {
	ID        string `json:"id"`
	Community int    `json:"community"`
}

// Result is the output of Detect.
type Result struct {
	// Graph is a copy of the input with Node.Community set on every node.
	Graph *core.Graph `json:"-"`

	Communities []Community  `json:"communities"`
	Nodes       []Assignment `json:"nodes"`
	Modularity  float64      `json:"modularity"`
	Algorithm   Algorithm    `json:"algorithm"`

	// Levels counts aggregation rounds that changed the partition.
	Levels int `json:"levels"`
}
