package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/netxplore/compare"
	"github.com/katalvlaran/netxplore/filter"
	"github.com/katalvlaran/netxplore/pipeline"
)

func newCompareCmd() *cobra.Command {
	var (
		ff              filterFlags
		nodeFilter      string
		minWeight       int
		highlightCommon bool
		metricNames     string
	)

	cmd := &cobra.Command{
		Use:   "compare ORIGINAL COMPARISON",
		Short: "Compare the interaction graphs of two sources",
		Long: `Compare filters both sources the same way, restricts the graphs by
--node-filter and --min-weight and reports how node and link counts changed,
which users appear in both and, with --metrics, how the chosen figures moved.`,
		Example: `  netxplore compare 3f1c... 9a0e... --metrics density,avg_pagerank
  netxplore compare 3f1c... 9a0e... --node-filter ann --min-weight 2 -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := compare.ParseMetrics(filter.SplitList(metricNames))
			if err != nil {
				return err
			}

			b, closeFn, err := openBackend(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := b.eng.Compare(cmd.Context(), pipeline.CompareRequest{
				Original:   args[0],
				Comparison: args[1],
				Filter:     ff.options(),
				Anonymize:  ff.anonymization(),
				Options: compare.Options{
					NodeFilter:      nodeFilter,
					MinWeight:       minWeight,
					HighlightCommon: highlightCommon,
					Metrics:         ms,
				},
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if envFrom(cmd).output == outputJSON {
				return renderJSON(w, res)
			}

			st := res.Stats
			t := newTable(w, "", "Original", "Comparison", "Difference", "Change %")
			t.AppendRow([]any{"nodes", st.OriginalNodeCount, st.ComparisonNodeCount, st.NodeDifference, formatFloat(st.NodeChangePercent)})
			t.AppendRow([]any{"links", st.OriginalLinkCount, st.ComparisonLinkCount, st.LinkDifference, formatFloat(st.LinkChangePercent)})
			for _, m := range ms {
				d := res.MetricDeltas[m]
				t.AppendRow([]any{string(m), formatFloat(d.Original), formatFloat(d.Comparison), formatFloat(d.Difference), formatFloat(d.PercentChange)})
			}
			t.AppendFooter([]any{"common users", st.CommonNodesCount, "", "", ""})
			t.Render()
			renderNotes(w, res.Notes)

			return nil
		},
	}

	ff.register(cmd.Flags())
	cmd.Flags().StringVar(&nodeFilter, "node-filter", "", "keep users whose name contains this text")
	cmd.Flags().IntVar(&minWeight, "min-weight", 0, "drop links lighter than this")
	cmd.Flags().BoolVar(&highlightCommon, "highlight-common", false, "flag users present in both graphs")
	cmd.Flags().StringVar(&metricNames, "metrics", "", "comma-separated metrics to diff (e.g. density,avg_degree)")

	return cmd
}
