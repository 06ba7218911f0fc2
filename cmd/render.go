package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	"github.com/jmehdipour/credit-insights/internal/chart"
	"github.com/jmehdipour/credit-insights/internal/chartpng"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOut    string
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render <chart>",
	Short: "Render one chart as a JSON spec or PNG image",
	Long:  "Render one chart. <chart> is a slug (e.g. seasonal-trends) or a menu title.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := model.ParseChartKind(args[0])
		if !ok {
			return &chart.UnknownChartError{Kind: args[0]}
		}
		if renderFormat != "json" && renderFormat != "png" {
			return fmt.Errorf("unknown format %q (json|png)", renderFormat)
		}

		cfg, err := setup()
		if err != nil {
			return err
		}
		table, err := bootstrap.Table(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		svc := bootstrap.Service(cfg, table, nil)

		var out []byte
		if renderFormat == "png" {
			out, err = svc.Image(cmd.Context(), kind, chartpng.Options{Width: renderWidth, Height: renderHeight})
		} else {
			var spec model.ChartSpec
			if spec, err = svc.Chart(cmd.Context(), kind); err == nil {
				out, err = json.MarshalIndent(spec, "", "  ")
				out = append(out, '\n')
			}
		}
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if renderOut != "" && renderOut != "-" {
			f, err := os.Create(renderOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		_, err = w.Write(out)
		return err
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "json", "output format: json|png")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "png width in pixels (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "png height in pixels (default from config)")
}
