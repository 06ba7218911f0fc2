package cmd

import (
	"strconv"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	"github.com/jmehdipour/credit-insights/internal/service/insights"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	previewRows    int
	previewSummary bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the first rows of the prepared dataset, or its summary statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		table, err := bootstrap.Table(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		svc := bootstrap.Service(cfg, table, nil)

		tw := tablewriter.NewWriter(cmd.OutOrStdout())
		tw.SetAutoWrapText(false)

		if previewSummary {
			tw.SetHeader([]string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
			for _, s := range svc.Summary() {
				tw.Append([]string{
					s.Column, strconv.Itoa(s.Count), f2(s.Mean), f2(s.Std), f2(s.Min),
					f2(s.P25), f2(s.P50), f2(s.P75), f2(s.Max),
				})
			}
			tw.Render()
			return nil
		}

		p := svc.Preview(previewRows)
		tw.SetHeader(p.Columns)
		tw.AppendBulk(p.Rows)
		tw.SetCaption(true, strconv.Itoa(len(p.Rows))+" of "+strconv.Itoa(p.Total)+" records from "+p.Source)
		tw.Render()
		return nil
	},
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", insights.DefaultPreviewRows, "number of rows to show")
	previewCmd.Flags().BoolVar(&previewSummary, "summary", false, "show describe()-style statistics instead of rows")
}
