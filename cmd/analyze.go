package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
	"github.com/veldt-labs/cropsight/internal/utils"
)

var (
	anaCountry   string
	anaYear      int
	anaDelimiter string
	anaPolicy    string
	anaFormat    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Filter a climate dataset and print the crop recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(anaDelimiter, anaPolicy)
		if err != nil {
			return err
		}
		t, err := dataset.Load(args[0], opt)
		if err != nil {
			return err
		}
		for _, w := range t.Warnings {
			fmt.Printf("⚠ %s\n", w)
		}

		sel := buildSelection(anaCountry, anaYear, cmd.Flags().Changed("year"))
		view, err := climate.ApplyFilters(t, sel)
		if err != nil {
			return err
		}
		rec, err := climate.Recommend(view)
		if errors.Is(err, climate.ErrNoData) {
			fmt.Println("⚠ No data available for the selected country and year. Adjust filters or upload a different dataset.")
			return nil
		}
		if err != nil {
			return err
		}

		switch anaFormat {
		case "json":
			b, err := utils.PrettyJSON(rec)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		case "text", "":
			fmt.Printf("Rows in selection: %d\n", rec.Rows)
			fmt.Printf("Predicted Temperature Anomaly: %s°C\n", rec.TempDisplay())
			fmt.Printf("Predicted Average CO2 Level: %s ppm\n", rec.CO2Display())
			fmt.Printf("Suggested Crop to Yield: %s\n", rec.Crop)
		default:
			return fmt.Errorf("unsupported --format: %s (use 'text'|'json')", anaFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaCountry, "country", "", "filter by country")
	analyzeCmd.Flags().IntVar(&anaYear, "year", 0, "filter by year")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'")
	analyzeCmd.Flags().StringVar(&anaPolicy, "policy", "", "non-numeric value policy: 'reject'|'skip' (default from config)")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "text", "output format: 'text'|'json'")
}
