package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/netxplore/internal/store"
	"github.com/katalvlaran/netxplore/pipeline"
)

// backend bundles the store and the engine reading from it.
type backend struct {
	store *store.Store
	eng   *pipeline.Engine
}

// openBackend opens the configured database and builds an engine on it.
// rec may be nil. The caller must call close.
func openBackend(cmd *cobra.Command, rec pipeline.Recorder) (*backend, func(), error) {
	e := envFrom(cmd)
	st, err := store.Open(cmd.Context(), e.cfg.Store.Path, e.log)
	if err != nil {
		return nil, nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(e.log),
		pipeline.WithLimits(pipeline.Limits{MaxNodes: e.cfg.Limits.MaxNodes, MaxLinks: e.cfg.Limits.MaxLinks}),
		pipeline.WithMetricOptions(e.cfg.MetricOptions()...),
		pipeline.WithAnonymizeKey(e.cfg.Anonymize.Key),
	}
	if rec != nil {
		opts = append(opts, pipeline.WithRecorder(rec))
	}
	eng, err := pipeline.New(st, opts...)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return &backend{store: st, eng: eng}, func() { _ = st.Close() }, nil
}
