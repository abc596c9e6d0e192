package dataset

import (
	"errors"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Country ":          "country",
		"Temperature Anomaly": "temperature_anomaly",
		"Average CO2":         "average_co2",
		"year":                "year",
		"Two  Spaces":         "two__spaces",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	names := []string{" Country ", "Temperature Anomaly", "average_co2", "YEAR"}
	for _, n := range names {
		once := NormalizeName(n)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("normalization not idempotent for %q: %q != %q", n, once, twice)
		}
	}
}

func TestDuplicateColumnsRejected(t *testing.T) {
	_, err := New("x.csv", []string{"Country", " country "}, nil)
	if err == nil {
		t.Fatal("expected duplicate-column error")
	}
}

func TestColumnIndexUnknown(t *testing.T) {
	tab, err := New("x.csv", []string{"Country", "Year"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := tab.ColumnIndex("nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("want ErrUnknownColumn, got %v", err)
	}
	if _, err := tab.Strings("nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("Strings: want ErrUnknownColumn, got %v", err)
	}
}

func TestDistinctValues(t *testing.T) {
	tab, err := New("x.csv", []string{"Country", "Year"}, [][]string{
		{"Kenya", "2001"},
		{"Brazil", "2002"},
		{"Kenya", "2001"},
		{"", "2003.0"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	countries, err := tab.DistinctStrings("country")
	if err != nil {
		t.Fatalf("DistinctStrings: %v", err)
	}
	if len(countries) != 2 || countries[0] != "Brazil" || countries[1] != "Kenya" {
		t.Fatalf("countries = %v", countries)
	}
	years, err := tab.DistinctYears()
	if err != nil {
		t.Fatalf("DistinctYears: %v", err)
	}
	if len(years) != 3 || years[0] != 2001 || years[2] != 2003 {
		t.Fatalf("years = %v", years)
	}
}

func TestSubsetPreservesOrder(t *testing.T) {
	tab, err := New("x.csv", []string{"country", "year"}, [][]string{
		{"A", "1"}, {"B", "2"}, {"C", "3"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sub := tab.Subset([]int{0, 2})
	if sub.Len() != 2 {
		t.Fatalf("Len = %d", sub.Len())
	}
	if got, _ := sub.Cell(1, "country"); got != "C" {
		t.Fatalf("Cell(1, country) = %q", got)
	}
}

func TestParseYear(t *testing.T) {
	if y, err := ParseYear("2001"); err != nil || y != 2001 {
		t.Fatalf("ParseYear(2001) = %d, %v", y, err)
	}
	if y, err := ParseYear(" 2001.0 "); err != nil || y != 2001 {
		t.Fatalf("ParseYear(2001.0) = %d, %v", y, err)
	}
	if _, err := ParseYear("2001.5"); err == nil {
		t.Fatal("expected error for fractional year")
	}
	if _, err := ParseYear("abc"); err == nil {
		t.Fatal("expected error for non-numeric year")
	}
}
