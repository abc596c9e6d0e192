package climate

import (
	"testing"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	tab, err := dataset.New("climate.csv",
		[]string{"country", "year", "temperature_anomaly", "average_co2"},
		[][]string{
			{"Kenya", "2001", "1.2", "395.5"},
			{"Kenya", "2002", "1.4", "398.0"},
			{"Brazil", "2001", "0.9", "392.1"},
			{"Brazil", "2002", "1.1", "396.7"},
			{"Norway", "2001", "0.4", "390.0"},
		})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tab
}

func TestApplyFiltersUnsetIsIdentity(t *testing.T) {
	tab := testTable(t)
	view, err := ApplyFilters(tab, Selection{})
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	if view.Len() != tab.Len() {
		t.Fatalf("unfiltered view has %d rows, want %d", view.Len(), tab.Len())
	}
}

func TestApplyFiltersCountry(t *testing.T) {
	tab := testTable(t)
	view, err := ApplyFilters(tab, Selection{Country: "Kenya"})
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	if view.Len() != 2 {
		t.Fatalf("rows = %d, want 2", view.Len())
	}
	countries, _ := view.Strings(dataset.ColCountry)
	for _, c := range countries {
		if c != "Kenya" {
			t.Fatalf("leaked row for %q", c)
		}
	}
}

func TestApplyFiltersCountryAndYear(t *testing.T) {
	tab := testTable(t)
	view, err := ApplyFilters(tab, Selection{Country: "Brazil", Year: YearOf(2002)})
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	if view.Len() != 1 {
		t.Fatalf("rows = %d, want 1", view.Len())
	}
	temp, _ := view.Cell(0, dataset.ColTemperature)
	if temp != "1.1" {
		t.Fatalf("wrong row selected: temp = %q", temp)
	}
}

func TestApplyFiltersSubsetProperty(t *testing.T) {
	tab := testTable(t)
	sels := []Selection{
		{},
		{Country: "Kenya"},
		{Year: YearOf(2001)},
		{Country: "Norway", Year: YearOf(2001)},
		{Country: "Norway", Year: YearOf(2002)},
	}
	for _, sel := range sels {
		view, err := ApplyFilters(tab, sel)
		if err != nil {
			t.Fatalf("ApplyFilters(%+v): %v", sel, err)
		}
		if view.Len() > tab.Len() {
			t.Fatalf("view larger than input for %+v", sel)
		}
		// every view row must exist in the input, in input order
		last := -1
		for i := 0; i < view.Len(); i++ {
			found := -1
			for j := last + 1; j < tab.Len(); j++ {
				if equalRow(view.Rows[i], tab.Rows[j]) {
					found = j
					break
				}
			}
			if found < 0 {
				t.Fatalf("view row %d not found in input order for %+v", i, sel)
			}
			last = found
		}
	}
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFiltersEmptyResult(t *testing.T) {
	tab := testTable(t)
	view, err := ApplyFilters(tab, Selection{Country: "Kenya", Year: YearOf(1999)})
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	if !view.Empty() {
		t.Fatalf("rows = %d, want empty view", view.Len())
	}
}
