package climate

import (
	"errors"
	"math"
	"testing"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

func singleRowTable(t *testing.T, temp, co2 string) *dataset.Table {
	t.Helper()
	tab, err := dataset.New("x.csv",
		[]string{"country", "year", "temperature_anomaly", "average_co2"},
		[][]string{{"Kenya", "2001", temp, co2}})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tab
}

func TestRecommendMeans(t *testing.T) {
	tab := testTable(t)
	rec, err := Recommend(tab)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// cross-check against manual summation
	wantTemp := (1.2 + 1.4 + 0.9 + 1.1 + 0.4) / 5
	wantCO2 := (395.5 + 398.0 + 392.1 + 396.7 + 390.0) / 5
	if math.Abs(rec.MeanTemp-wantTemp) > 1e-12 {
		t.Fatalf("MeanTemp = %v, want %v", rec.MeanTemp, wantTemp)
	}
	if math.Abs(rec.MeanCO2-wantCO2) > 1e-12 {
		t.Fatalf("MeanCO2 = %v, want %v", rec.MeanCO2, wantCO2)
	}
	if rec.Rows != 5 {
		t.Fatalf("Rows = %d", rec.Rows)
	}
}

func TestRecommendEmptyView(t *testing.T) {
	tab := testTable(t)
	view, err := ApplyFilters(tab, Selection{Country: "Atlantis"})
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	_, err = Recommend(view)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

// Boundary cases for the threshold table. The exact rule order matters:
// at (1.5, 400) the first rule's strict inequalities both miss, but the
// second rule (temp > 1.0, co2 <= 400) still fires; (1.6, 350) likewise
// falls through to the second rule, not a temperature-only bucket.
func TestSuggestCropBoundaries(t *testing.T) {
	cases := []struct {
		temp, co2 string
		want      string
	}{
		{"1.5", "400", CropWarmLowCO2},
		{"1.51", "401", CropWarmHighCO2},
		{"1.2", "300", CropWarmLowCO2},
		{"0.5", "200", CropCool},
		{"1.6", "350", CropWarmLowCO2},
		{"1.01", "400", CropWarmLowCO2},
		{"1.0", "200", CropCool},
		{"2.0", "400.5", CropWarmHighCO2},
	}
	for _, c := range cases {
		tab := singleRowTable(t, c.temp, c.co2)
		rec, err := Recommend(tab)
		if err != nil {
			t.Fatalf("Recommend(%s, %s): %v", c.temp, c.co2, err)
		}
		if rec.Crop != c.want {
			t.Errorf("temp=%s co2=%s: crop = %q, want %q", c.temp, c.co2, rec.Crop, c.want)
		}
	}
}

func TestRecommendationDisplayRounding(t *testing.T) {
	tab, err := dataset.New("x.csv",
		[]string{"country", "year", "temperature_anomaly", "average_co2"},
		[][]string{
			{"Kenya", "2001", "1.231", "395.551"},
			{"Kenya", "2002", "1.236", "395.568"},
		})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	rec, err := Recommend(tab)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := rec.TempDisplay(); got != "1.23" {
		t.Fatalf("TempDisplay = %q", got)
	}
	if got := rec.CO2Display(); got != "395.56" {
		t.Fatalf("CO2Display = %q", got)
	}
	// full precision retained internally
	if rec.MeanTemp == 1.23 {
		t.Fatal("MeanTemp was rounded in place")
	}
}
