package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/customize"
)

func newCustomizeCmd() *cobra.Command {
	var settings string

	cmd := &cobra.Command{
		Use:   "customize [GRAPH]",
		Short: "Apply visualization settings to a graph",
		Long: `Customize reads a {"nodes", "links"} graph, typically the JSON output of
analyze, from GRAPH or standard input and sets the size and color of every
node according to the YAML file given by --settings (defaults otherwise).`,
		Example: `  netxplore analyze 3f1c... -o json | netxplore customize --settings viz.yaml -o json`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := customize.DefaultSettings()
			if settings != "" {
				var err error
				if s, err = loadSettings(settings); err != nil {
					return err
				}
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var g core.Graph
			if err := json.NewDecoder(r).Decode(&g); err != nil {
				return fmt.Errorf("reading graph: %w", err)
			}

			out, err := customize.Apply(&g, s)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if envFrom(cmd).output == outputJSON {
				return renderJSON(w, out)
			}
			t := newTable(w, "User", "Size", "Color", "Highlighted")
			for _, n := range out.Nodes {
				t.AppendRow([]any{n.ID, formatFloat(n.Size), n.Color, n.Highlighted})
			}
			t.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&settings, "settings", "", "YAML visualization settings file")

	return cmd
}
