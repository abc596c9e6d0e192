package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Country", "Year", "Temperature Anomaly", "Average CO2"},
		{"Kenya", 2001, 1.2, 395.5},
		{"Brazil", 2001, 0.9, 392.1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "climate.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSXFixture(t)
	tab, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("rows = %d", tab.Len())
	}
	if !tab.HasColumn(ColTemperature) || !tab.HasColumn(ColCO2) {
		t.Fatalf("columns = %v", tab.Columns)
	}
	co2s, err := tab.Floats(ColCO2)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	if co2s[1] != 392.1 {
		t.Fatalf("co2s = %v", co2s)
	}
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	path := writeXLSXFixture(t)
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	opt := DefaultOptions()
	opt.Sheet = "NoSuchSheet"
	if _, err := Read(f, path, opt); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}
