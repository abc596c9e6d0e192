package climate

import (
	"fmt"
	"strings"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

// Highlight labels attached to map rows. Purely descriptive metadata for the
// rendering layer; they never filter rows.
const (
	HighlightSelected = "Selected Country"
	HighlightOther    = "Other Countries"
)

// MapRow is one country data point for the choropleth.
type MapRow struct {
	Country     string  `json:"country"`
	Year        int     `json:"year"`
	TempAnomaly float64 `json:"temperature_anomaly"`
	AvgCO2      float64 `json:"average_co2"`
	Highlight   string  `json:"highlight"`
}

// SelectMapRows returns the rows feeding the map: the whole table, or the
// rows matching the selected year when one is set. The country selection
// only drives the Highlight label.
func SelectMapRows(t *dataset.Table, sel Selection) ([]MapRow, error) {
	view, err := ApplyFilters(t, Selection{Year: sel.Year})
	if err != nil {
		return nil, err
	}
	countryIdx, err := view.ColumnIndex(dataset.ColCountry)
	if err != nil {
		return nil, err
	}
	yearIdx, err := view.ColumnIndex(dataset.ColYear)
	if err != nil {
		return nil, err
	}
	temps, err := view.Floats(dataset.ColTemperature)
	if err != nil {
		return nil, fmt.Errorf("map temperature: %w", err)
	}
	co2s, err := view.Floats(dataset.ColCO2)
	if err != nil {
		return nil, fmt.Errorf("map co2: %w", err)
	}

	rows := make([]MapRow, view.Len())
	for i, row := range view.Rows {
		country := strings.TrimSpace(row[countryIdx])
		year, _ := dataset.ParseYear(row[yearIdx])
		label := HighlightOther
		if sel.CountrySet() && country == sel.Country {
			label = HighlightSelected
		}
		rows[i] = MapRow{
			Country:     country,
			Year:        year,
			TempAnomaly: temps[i],
			AvgCO2:      co2s[i],
			Highlight:   label,
		}
	}
	return rows, nil
}
