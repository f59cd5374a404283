package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/internal/store"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import NAME [FILE]",
		Short: "Import a JSON array of messages as a new source",
		Long: `Import reads a JSON array of {"author", "timestamp", "text"} objects from
FILE, or from standard input when FILE is omitted or "-", and stores it as a
new source called NAME.`,
		Example: `  netxplore import "team chat" messages.json
  cat messages.json | netxplore import "team chat"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			src, err := b.store.ImportJSON(cmd.Context(), args[0], r)
			if err != nil {
				return err
			}
			envFrom(cmd).log.Info("source imported",
				zap.String("id", src.ID), zap.Int("messages", src.Messages))

			return renderSources(cmd, []store.Source{src})
		},
	}
}

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List stored sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			srcs, err := b.store.ListSources(cmd.Context())
			if err != nil {
				return err
			}

			return renderSources(cmd, srcs)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a source and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := b.store.DeleteSource(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func renderSources(cmd *cobra.Command, srcs []store.Source) error {
	w := cmd.OutOrStdout()
	if envFrom(cmd).output == outputJSON {
		return renderJSON(w, srcs)
	}

	t := newTable(w, "ID", "Name", "Messages", "Created")
	for _, s := range srcs {
		t.AppendRow([]any{s.ID, s.Name, s.Messages, s.CreatedAt.Format(time.RFC3339)})
	}
	t.Render()

	return nil
}
