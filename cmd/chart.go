package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/cropsight/internal/chart"
	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
)

var (
	chartType      string
	chartX         string
	chartY         string
	chartColor     string
	chartValues    string
	chartOut       string
	chartCountry   string
	chartYear      int
	chartDelimiter string
	chartPolicy    string
	chartWidth     float64
	chartHeight    float64
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Render a chart from a climate dataset to PNG",
	Long: `Render a chart to PNG. Types: scatter, line, bar, pie, histogram, plus
'dual' for the temperature/CO2 time-series panel pair. Pie charts ignore --y
and require --values; histograms ignore --y.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(chartDelimiter, chartPolicy)
		if err != nil {
			return err
		}
		t, err := dataset.Load(args[0], opt)
		if err != nil {
			return err
		}
		sel := buildSelection(chartCountry, chartYear, cmd.Flags().Changed("year"))
		view, err := climate.ApplyFilters(t, sel)
		if err != nil {
			return err
		}
		if view.Empty() {
			return fmt.Errorf("no data for the current selection; nothing to chart")
		}

		width, height := chartWidth, chartHeight
		if width <= 0 {
			width = cfg.ChartWidthIn
		}
		if height <= 0 {
			height = cfg.ChartHeightIn
		}
		if width <= 0 {
			width = 10
		}
		if height <= 0 {
			height = 6
		}

		if chartType == "dual" {
			if err := chart.RenderDual(view, width, height, chartOut); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", chartOut)
			return nil
		}

		kind, err := chart.ParseKind(chartType)
		if err != nil {
			return err
		}
		spec := chart.Spec{
			Kind:   kind,
			X:      chartX,
			Y:      chartY,
			Color:  chartColor,
			Values: chartValues,
		}
		p, err := chart.Render(view, spec)
		if err != nil {
			return err
		}
		if err := chart.SavePNG(p, width, height, chartOut); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", chartOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartType, "type", "scatter", "chart type: scatter|line|bar|pie|histogram|dual")
	chartCmd.Flags().StringVar(&chartX, "x", "year", "x-axis column")
	chartCmd.Flags().StringVar(&chartY, "y", "temperature_anomaly", "y-axis column (ignored by pie and histogram)")
	chartCmd.Flags().StringVar(&chartColor, "color", "", "optional color/grouping column")
	chartCmd.Flags().StringVar(&chartValues, "values", "", "values column (pie charts only)")
	chartCmd.Flags().StringVar(&chartOut, "out", "chart.png", "output PNG path")
	chartCmd.Flags().StringVar(&chartCountry, "country", "", "filter by country")
	chartCmd.Flags().IntVar(&chartYear, "year", 0, "filter by year")
	chartCmd.Flags().StringVar(&chartDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'")
	chartCmd.Flags().StringVar(&chartPolicy, "policy", "", "non-numeric value policy: 'reject'|'skip'")
	chartCmd.Flags().Float64Var(&chartWidth, "width", 0, "chart width in inches (default from config)")
	chartCmd.Flags().Float64Var(&chartHeight, "height", 0, "chart height in inches (default from config)")
}
