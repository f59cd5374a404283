// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/core"
)

// Sentinel errors for metric computation.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("metrics: graph is nil")

	// ErrGraphTooLarge is returned when the graph exceeds MaxNodes or MaxLinks.
	ErrGraphTooLarge = errors.New("metrics: graph exceeds configured size limit")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("metrics: invalid option supplied")
)

// Defaults used by DefaultOptions.
const (
	DefaultDamping       = 0.85
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Option configures Compute via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the tunables of Compute.
type Options struct {
	// Ctx is checked between metric passes.
	Ctx context.Context

	// Logger receives stage timings and dropped-link warnings.
	Logger *zap.Logger

	// MaxNodes and MaxLinks bound the input size; 0 disables the check.
	MaxNodes int
	MaxLinks int

	// Damping is the PageRank continuation probability.
	Damping float64

	// Tolerance is the per-node convergence threshold of the power iterations.
	Tolerance float64

	// MaxIterations caps eigenvector and PageRank iterations.
	MaxIterations int

	// DropDangling removes links with unknown endpoints instead of failing
	// with core.ErrDanglingLink.
	DropDangling bool

	err error
}

// DefaultOptions returns Options with damping 0.85, tolerance 1e-6,
// 100 iterations, no size limit and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Logger:        zap.NewNop(),
		Damping:       DefaultDamping,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// WithContext sets the context checked between passes.
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

// WithLimits sets the node and link ceilings. Zero disables a ceiling;
// negative values are rejected.
func WithLimits(maxNodes, maxLinks int) Option {
	return func(o *Options) {
		if maxNodes < 0 || maxLinks < 0 {
			o.err = fmt.Errorf("%w: negative limit (%d nodes, %d links)", ErrOptionViolation, maxNodes, maxLinks)
			return
		}
		o.MaxNodes, o.MaxLinks = maxNodes, maxLinks
	}
}

// WithDamping sets the PageRank damping factor, which must lie in (0,1).
func WithDamping(d float64) Option {
	return func(o *Options) {
		if d <= 0 || d >= 1 {
			o.err = fmt.Errorf("%w: damping %v outside (0,1)", ErrOptionViolation, d)
			return
		}
		o.Damping = d
	}
}

// WithTolerance sets the convergence tolerance, which must be positive.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 {
			o.err = fmt.Errorf("%w: tolerance %v must be > 0", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations caps the power iterations; n must be ≥ 1.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max iterations %d must be >= 1", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithDropDangling toggles lenient handling of dangling link endpoints.
func WithDropDangling(drop bool) Option {
	return func(o *Options) { o.DropDangling = drop }
}

// Result is the output of Compute.
type Result struct {
	// Graph is an annotated copy of the input.
	Graph *core.Graph `json:"graph"`

	// Density is the share of node pairs joined by at least one link, in [0,1].
	Density float64 `json:"density"`

	// Diameter is the longest finite hop distance; 0 for n < 2 or no links.
	Diameter int `json:"diameter"`

	// DroppedLinks counts links removed under WithDropDangling.
	DroppedLinks int `json:"droppedLinks,omitempty"`
}
