package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
	"github.com/veldt-labs/cropsight/internal/utils"
)

var (
	expOut       string
	expCountry   string
	expYear      int
	expDelimiter string
	expPolicy    string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the filtered dataset and recommendation to an XLSX report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(expDelimiter, expPolicy)
		if err != nil {
			return err
		}
		t, err := dataset.Load(args[0], opt)
		if err != nil {
			return err
		}
		sel := buildSelection(expCountry, expYear, cmd.Flags().Changed("year"))
		view, err := climate.ApplyFilters(t, sel)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()
		if err := writeDataSheet(f, view); err != nil {
			return err
		}
		if err := writeSummarySheet(f, view, sel, t); err != nil {
			return err
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		if err := utils.SafeWriteFile(expOut, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s (%d rows)\n", expOut, view.Len())
		return nil
	},
}

func writeDataSheet(f *excelize.File, view *dataset.Table) error {
	const sheet = "Data"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, col := range view.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 18)
	}
	for r, row := range view.Rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if num, err := dataset.ParseFloat(val); err == nil {
				f.SetCellValue(sheet, cell, num)
			} else {
				f.SetCellValue(sheet, cell, val)
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, view *dataset.Table, sel climate.Selection, full *dataset.Table) error {
	const sheet = "Summary"
	f.NewSheet(sheet)

	country := sel.Country
	if country == "" {
		country = "(all)"
	}
	year := "(all)"
	if sel.YearSet() {
		year = strconv.Itoa(*sel.Year)
	}
	f.SetCellValue(sheet, "A1", "Filter: Country")
	f.SetCellValue(sheet, "B1", country)
	f.SetCellValue(sheet, "A2", "Filter: Year")
	f.SetCellValue(sheet, "B2", year)
	f.SetCellValue(sheet, "A3", "Rows in selection")
	f.SetCellValue(sheet, "B3", view.Len())

	rec, err := climate.Recommend(view)
	if errors.Is(err, climate.ErrNoData) {
		f.SetCellValue(sheet, "A5", "No data available for the selected country and year.")
		return nil
	}
	if err != nil {
		return err
	}
	f.SetCellValue(sheet, "A5", "Predicted Temperature Anomaly (°C)")
	f.SetCellValue(sheet, "B5", rec.MeanTemp)
	f.SetCellValue(sheet, "A6", "Predicted Average CO2 Level (ppm)")
	f.SetCellValue(sheet, "B6", rec.MeanCO2)
	f.SetCellValue(sheet, "A7", "Suggested Crop to Yield")
	f.SetCellValue(sheet, "B7", rec.Crop)

	for i, w := range full.Warnings {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", 9+i), "⚠ "+w)
	}
	f.SetColWidth(sheet, "A", "A", 36)
	f.SetColWidth(sheet, "B", "B", 28)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expOut, "out", "report.xlsx", "output XLSX path")
	exportCmd.Flags().StringVar(&expCountry, "country", "", "filter by country")
	exportCmd.Flags().IntVar(&expYear, "year", 0, "filter by year")
	exportCmd.Flags().StringVar(&expDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'")
	exportCmd.Flags().StringVar(&expPolicy, "policy", "", "non-numeric value policy: 'reject'|'skip'")
}
