package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/pipeline"
)

// loadSettings reads YAML visualization settings from path over the
// defaults.
func loadSettings(path string) (customize.VisualizationSettings, error) {
	s := customize.DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%w: %s: %v", customize.ErrInvalidSettings, path, err)
	}

	return s, nil
}

func newAnalyzeCmd() *cobra.Command {
	var (
		ff       filterFlags
		settings string
	)

	cmd := &cobra.Command{
		Use:   "analyze SOURCE",
		Short: "Build and annotate the interaction graph of a source",
		Long: `Analyze filters the messages of SOURCE, builds the interaction graph and
annotates every user with degree, closeness, betweenness, eigenvector and
PageRank centrality plus a community. With --settings the nodes also get a
size and color.`,
		Example: `  netxplore analyze 3f1c... --start-date 2024-01-01 --active-users 20
  netxplore analyze 3f1c... --anonymize --settings viz.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pipeline.AnalyzeRequest{
				SourceID:  args[0],
				Filter:    ff.options(),
				Anonymize: ff.anonymization(),
			}
			if settings != "" {
				s, err := loadSettings(settings)
				if err != nil {
					return err
				}
				req.Settings = &s
			}

			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := b.eng.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if envFrom(cmd).output == outputJSON {
				return renderJSON(w, res)
			}
			t := newTable(w, "User", "Messages", "Degree", "Closeness", "Betweenness", "Eigenvector", "PageRank", "Community")
			for _, n := range res.Nodes {
				t.AppendRow([]any{
					n.ID, n.Messages, n.Degree,
					formatFloat(n.Closeness), formatFloat(n.Betweenness),
					formatFloat(n.Eigenvector), formatFloat(n.PageRank),
					formatCommunity(n.Community),
				})
			}
			t.AppendFooter([]any{"", "", "", "", "", "Density", formatFloat(res.Density), ""})
			t.AppendFooter([]any{"", "", "", "", "", "Diameter", res.Diameter, ""})
			t.Render()
			renderNotes(w, res.Notes)

			return nil
		},
	}

	ff.register(cmd.Flags())
	cmd.Flags().StringVar(&settings, "settings", "", "YAML visualization settings file")

	return cmd
}

func newCommunitiesCmd() *cobra.Command {
	var (
		ff        filterFlags
		algorithm string
	)

	cmd := &cobra.Command{
		Use:   "communities SOURCE",
		Short: "Detect communities in the interaction graph of a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := b.eng.Communities(cmd.Context(), pipeline.CommunitiesRequest{
				SourceID:  args[0],
				Filter:    ff.options(),
				Anonymize: ff.anonymization(),
				Algorithm: community.Algorithm(algorithm),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if envFrom(cmd).output == outputJSON {
				return renderJSON(w, res)
			}
			t := newTable(w, "Community", "Size", "Avg betweenness", "Avg PageRank", "Members")
			for _, c := range res.Communities {
				t.AppendRow([]any{c.ID, c.Size, formatFloat(c.AvgBetweenness), formatFloat(c.AvgPageRank), strings.Join(c.Nodes, ", ")})
			}
			t.AppendFooter([]any{"", "", "", "Modularity", formatFloat(res.Modularity)})
			t.Render()
			renderNotes(w, res.Notes)

			return nil
		},
	}

	ff.register(cmd.Flags())
	cmd.Flags().StringVar(&algorithm, "algorithm", string(community.AlgorithmLouvain), "community detection algorithm")

	return cmd
}
