// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/compare"
	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/filter"
	"github.com/katalvlaran/netxplore/metrics"
)

// Engine runs the analysis stages for stored message sources. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	src        Source
	log        *zap.Logger
	rec        Recorder
	limits     Limits
	metricOpts []metrics.Option
	anonKey    string
}

// New returns an Engine reading messages from src.
func New(src Source, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	e := &Engine{src: src, log: zap.NewNop(), rec: nopRecorder{}}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// run is the per-request state of a single-source pipeline.
type run struct {
	graph   *core.Graph
	metrics *metrics.Result
	mapping *anonymize.Mapping
	notes   []string
}

// stage runs fn unless ctx is already done, then reports its duration.
func (e *Engine) stage(ctx context.Context, name string, fn func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	start := time.Now()
	err := fn()
	took := time.Since(start)
	e.rec.ObserveStage(name, took, err)
	if err != nil {
		e.log.Debug("stage failed", zap.String("stage", name), zap.Duration("took", took), zap.Error(err))
		return err
	}
	e.log.Debug("stage done", zap.String("stage", name), zap.Duration("took", took))

	return nil
}

// anonOptions resolves the mode and key of one request.
func (e *Engine) anonOptions(a Anonymization) ([]anonymize.Option, error) {
	mode, err := anonymize.ParseMode(string(a.Mode))
	if err != nil {
		return nil, err
	}
	opts := []anonymize.Option{anonymize.WithMode(mode)}
	if mode == anonymize.ModeKeyed {
		key := e.anonKey
		if key == "" {
			key = uuid.NewString()
		}
		opts = append(opts, anonymize.WithKey(key))
	}

	return opts, nil
}

// prepare loads and filters one source, enforces the limits, optionally
// anonymizes early and computes metrics.
func (e *Engine) prepare(ctx context.Context, sourceID string, f filter.Options, anon Anonymization, early bool) (*run, error) {
	if sourceID == "" {
		return nil, ErrEmptySourceID
	}
	r := &run{}

	var msgs []core.Message
	err := e.stage(ctx, StageLoad, func() error {
		var err error
		msgs, err = e.src.Messages(ctx, sourceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, StageFilter, func() error {
		f, r.notes = f.Sanitize()
		for _, n := range r.notes {
			e.log.Warn("filter value replaced", zap.String("source", sourceID), zap.String("note", n))
		}
		r.graph = filter.Build(msgs, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, StageLimits, func() error {
		if err := metrics.Check(r.graph, e.limits.MaxNodes, e.limits.MaxLinks); err != nil {
			return fmt.Errorf("%w: source %s: %w", ErrGraphTooLarge, sourceID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if anon.Enabled && early {
		if err = e.anonymize(ctx, r, anon); err != nil {
			return nil, err
		}
	}

	err = e.stage(ctx, StageMetrics, func() error {
		opts := append([]metrics.Option{metrics.WithContext(ctx), metrics.WithLogger(e.log)}, e.metricOpts...)
		res, err := metrics.Compute(r.graph, opts...)
		if err != nil {
			return err
		}
		r.metrics, r.graph = res, res.Graph
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (e *Engine) anonymize(ctx context.Context, r *run, anon Anonymization) error {
	return e.stage(ctx, StageAnonymize, func() error {
		opts, err := e.anonOptions(anon)
		if err != nil {
			return err
		}
		r.graph, r.mapping, err = anonymize.Apply(r.graph, opts...)
		return err
	})
}

// isEarly reports whether anon asks for anonymization before metrics.
func isEarly(anon Anonymization) (bool, error) {
	p, err := anonymize.ParsePhase(string(anon.Phase))
	if err != nil {
		return false, err
	}

	return p == anonymize.PhaseEarly, nil
}

// Analyze returns the metric-annotated graph of one source, with community
// assignments and, when req.Settings is set, render attributes.
//
// Stage order: load, filter, limits, [anonymize early], metrics,
// communities, [customize], [anonymize late]. ctx is checked before every
// stage.
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	early, err := isEarly(req.Anonymize)
	if err != nil {
		return nil, err
	}
	if req.Settings != nil {
		if err = req.Settings.Validate(); err != nil {
			return nil, err
		}
	}
	r, err := e.prepare(ctx, req.SourceID, req.Filter, req.Anonymize, early)
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, StageCommunity, func() error {
		res, err := community.Detect(r.graph, community.WithContext(ctx), community.WithLogger(e.log))
		if err != nil {
			return err
		}
		r.graph = res.Graph
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Settings != nil {
		s := *req.Settings
		if r.mapping != nil {
			s.HighlightUsers = r.mapping.AliasAll(s.HighlightUsers)
		}
		if r.graph, err = e.Customize(ctx, r.graph, s); err != nil {
			return nil, err
		}
	}

	if req.Anonymize.Enabled && !early {
		if err = e.anonymize(ctx, r, req.Anonymize); err != nil {
			return nil, err
		}
	}

	return &AnalyzeResult{
		Graph:    r.graph,
		Density:  r.metrics.Density,
		Diameter: r.metrics.Diameter,
		Notes:    r.notes,
	}, nil
}

// Communities returns the community partition of one source.
func (e *Engine) Communities(ctx context.Context, req CommunitiesRequest) (*CommunitiesResult, error) {
	early, err := isEarly(req.Anonymize)
	if err != nil {
		return nil, err
	}
	algo, err := community.ParseAlgorithm(string(req.Algorithm))
	if err != nil {
		return nil, err
	}
	r, err := e.prepare(ctx, req.SourceID, req.Filter, req.Anonymize, early)
	if err != nil {
		return nil, err
	}

	var res *community.Result
	err = e.stage(ctx, StageCommunity, func() error {
		res, err = community.Detect(r.graph,
			community.WithContext(ctx),
			community.WithLogger(e.log),
			community.WithAlgorithm(algo))
		return err
	})
	if err != nil {
		return nil, err
	}

	if req.Anonymize.Enabled && !early {
		r.graph = res.Graph
		if err = e.anonymize(ctx, r, req.Anonymize); err != nil {
			return nil, err
		}
		aliasCommunities(res, r.mapping)
		res.Graph = r.graph
	}

	return &CommunitiesResult{Result: res, Notes: r.notes}, nil
}

// aliasCommunities rewrites the node lists of res through m.
func aliasCommunities(res *community.Result, m *anonymize.Mapping) {
	for i := range res.Communities {
		res.Communities[i].Nodes = m.AliasAll(res.Communities[i].Nodes)
	}
	for i := range res.Nodes {
		res.Nodes[i].ID, _ = m.Alias(res.Nodes[i].ID)
	}
}

// Compare runs the original and comparison pipelines concurrently and diffs
// their graphs. The first failing side cancels the other.
//
// Anonymization, when enabled, happens after the comparison with one
// mapping shared by both graphs so common nodes keep matching aliases; the
// phase is ignored.
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if _, err := isEarly(req.Anonymize); err != nil {
		return nil, err
	}
	var orig, comp *run

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orig, err = e.prepare(gctx, req.Original, req.Filter, req.Anonymize, false)
		if err != nil {
			return fmt.Errorf("original: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comp, err = e.prepare(gctx, req.Comparison, req.Filter, req.Anonymize, false)
		if err != nil {
			return fmt.Errorf("comparison: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := req.Options
	opts.MetricOptions = append(append([]metrics.Option{metrics.WithContext(ctx), metrics.WithLogger(e.log)}, e.metricOpts...), opts.MetricOptions...)

	var res *compare.Result
	err := e.stage(ctx, StageCompare, func() error {
		var err error
		res, err = compare.Compare(orig.graph, comp.graph, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	if req.Anonymize.Enabled {
		err = e.stage(ctx, StageAnonymize, func() error {
			aopts, err := e.anonOptions(req.Anonymize)
			if err != nil {
				return err
			}
			m, err := anonymize.NewMapping(append(res.Original.NodeIDs(), res.Comparison.NodeIDs()...), aopts...)
			if err != nil {
				return err
			}
			if res.Original, err = m.Rewrite(res.Original); err != nil {
				return err
			}
			if res.Comparison, err = m.Rewrite(res.Comparison); err != nil {
				return err
			}
			res.CommonNodes = m.AliasAll(res.CommonNodes)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &CompareResult{Result: res, Notes: append(orig.notes, comp.notes...)}, nil
}

// Customize applies s to g. It is a pure transform timed like any other
// stage.
func (e *Engine) Customize(ctx context.Context, g *core.Graph, s customize.VisualizationSettings) (*core.Graph, error) {
	var out *core.Graph
	err := e.stage(ctx, StageCustomize, func() error {
		var err error
		out, err = customize.Apply(g, s)
		return err
	})

	return out, err
}

// IsTooLarge reports whether err is a size-ceiling violation from any stage.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrGraphTooLarge) || errors.Is(err, metrics.ErrGraphTooLarge)
}
