// Package climate holds the filtering, aggregation, and crop-suggestion
// pipeline over a loaded climate dataset. Every function here is pure:
// selections arrive as an explicit request-scoped struct, never as ambient
// state.
package climate

import (
	"strings"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

// Selection is the current filter choice. An empty Country and a nil Year
// impose no constraint.
type Selection struct {
	Country string
	Year    *int
}

// YearOf is a convenience for building a Selection from a literal year.
func YearOf(y int) *int { return &y }

// CountrySet reports whether the country filter is active.
func (s Selection) CountrySet() bool { return s.Country != "" }

// YearSet reports whether the year filter is active.
func (s Selection) YearSet() bool { return s.Year != nil }

// ApplyFilters returns the subset of rows satisfying every set constraint by
// exact equality, preserving row order. Zero matching rows is a valid result,
// not an error; callers decide how to surface it.
func ApplyFilters(t *dataset.Table, sel Selection) (*dataset.Table, error) {
	if !sel.CountrySet() && !sel.YearSet() {
		return t, nil
	}
	countryIdx, err := t.ColumnIndex(dataset.ColCountry)
	if err != nil {
		return nil, err
	}
	yearIdx, err := t.ColumnIndex(dataset.ColYear)
	if err != nil {
		return nil, err
	}

	keep := make([]int, 0, t.Len())
	for i, row := range t.Rows {
		if sel.CountrySet() && strings.TrimSpace(row[countryIdx]) != sel.Country {
			continue
		}
		if sel.YearSet() {
			y, err := dataset.ParseYear(row[yearIdx])
			if err != nil || y != *sel.Year {
				continue
			}
		}
		keep = append(keep, i)
	}
	return t.Subset(keep), nil
}
