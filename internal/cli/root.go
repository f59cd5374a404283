// Package cli provides the netxplore command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/internal/config"
	"github.com/katalvlaran/netxplore/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// envKey stores the loaded environment in the command context.
type envKey struct{}

// env is what every subcommand shares: the merged configuration and the
// logger built from it.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	output string
}

func envFrom(cmd *cobra.Command) *env {
	if e, ok := cmd.Context().Value(envKey{}).(*env); ok {
		return e
	}

	return &env{log: zap.NewNop(), output: outputTable}
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile, output string

	root := &cobra.Command{
		Use:   "netxplore",
		Short: "Social interaction graph analytics",
		Long: `netxplore turns chat message logs into interaction graphs and analyzes them:
centrality metrics, Louvain communities, comparisons between two sources,
visual customization and anonymization.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unknown output format %q (table|json)", output)
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				log.Debug("configuration loaded", zap.String("file", cfg.File))
			}

			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{cfg: cfg, log: log, output: output}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = envFrom(cmd).log.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	pf.String("addr", "", "HTTP listen address")
	pf.String("db", "", "path to the SQLite database")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (json|console)")
	pf.Int("max-nodes", 0, "node ceiling for metric computation (0 disables)")
	pf.Int("max-links", 0, "link ceiling for metric computation (0 disables)")
	pf.StringVarP(&output, "output", "o", outputTable, "output format (table|json)")

	_ = root.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{outputTable, outputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newSourcesCmd(),
		newAnalyzeCmd(),
		newCommunitiesCmd(),
		newCompareCmd(),
		newCustomizeCmd(),
	)

	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
