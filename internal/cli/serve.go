package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/netxplore/internal/observability"
	"github.com/katalvlaran/netxplore/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Example: `  netxplore serve --addr :9090 --db chats.db
  NETXPLORE_LOG_LEVEL=debug netxplore serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFrom(cmd)
			col := observability.NewCollector("netxplore")

			b, closeFn, err := openBackend(cmd, col)
			if err != nil {
				return err
			}
			defer closeFn()

			srv := server.New(b.eng, b.store, col, e.log, server.Options{
				RequestTimeout: e.cfg.Server.RequestTimeout,
				CORSOrigins:    e.cfg.Server.CORSOrigins,
				MaxBodyBytes:   e.cfg.Server.MaxBodyBytes,
			})

			return srv.ListenAndServe(cmd.Context(), e.cfg.Server.Addr)
		},
	}
}
