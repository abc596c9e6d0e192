package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Required column names (after normalization) for the climate pipeline.
// Datasets missing any of these are rejected at load time.
const (
	ColCountry     = "country"
	ColYear        = "year"
	ColTemperature = "temperature_anomaly"
	ColCO2         = "average_co2"
)

// RequiredColumns lists the columns every dataset must carry.
var RequiredColumns = []string{ColCountry, ColYear, ColTemperature, ColCO2}

// ErrUnknownColumn indicates a lookup for a column the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Table is an ordered in-memory dataset. Rows are stored as strings aligned
// to Columns; numeric interpretation happens per column on access. Column
// names are normalized (trimmed, spaces to underscores, lowercased) and
// unique.
type Table struct {
	Name     string
	Columns  []string
	Rows     [][]string
	Warnings []string

	index map[string]int
}

// NormalizeName canonicalizes a column name: trim surrounding whitespace,
// replace spaces with underscores, lowercase. Idempotent.
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// New builds a table from a raw header and rows. Header names are
// normalized; duplicate normalized names are an error. Short rows are padded
// to the header width.
func New(name string, header []string, rows [][]string) (*Table, error) {
	cols := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		c := NormalizeName(h)
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q after normalization", c)
		}
		cols[i] = c
		index[c] = i
	}
	t := &Table{Name: name, Columns: cols, Rows: rows, index: index}
	for i, row := range t.Rows {
		if len(row) < len(cols) {
			padded := make([]string, len(cols))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	return t, nil
}

// ColumnIndex resolves a normalized column name to its position.
func (t *Table) ColumnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return i, nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// Cell returns the raw cell value at row i for the named column.
func (t *Table) Cell(i int, name string) (string, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(t.Rows[i][j]), nil
}

// Strings returns the trimmed values of a column in row order.
func (t *Table) Strings(name string) ([]string, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = strings.TrimSpace(row[j])
	}
	return out, nil
}

// Floats parses a column as float64 in row order. A cell that does not parse
// is an error naming the column and 1-based row; callers that need lenient
// semantics filter rows at load time instead (see Options.NumericPolicy).
func (t *Table) Floats(name string) ([]float64, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := ParseFloat(row[j])
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// Subset returns a new table containing the rows at the given indexes, in
// the given order. Row slices are shared with the receiver; tables are
// treated as immutable after load.
func (t *Table) Subset(idx []int) *Table {
	rows := make([][]string, len(idx))
	for k, i := range idx {
		rows[k] = t.Rows[i]
	}
	return &Table{Name: t.Name, Columns: t.Columns, Rows: rows, index: t.index}
}

// DistinctStrings returns the sorted distinct non-empty values of a column.
// Used to populate selector controls.
func (t *Table) DistinctStrings(name string) ([]string, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// DistinctYears returns the sorted distinct values of the year column.
func (t *Table) DistinctYears() ([]int, error) {
	j, err := t.ColumnIndex(ColYear)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var out []int
	for _, row := range t.Rows {
		y, err := ParseYear(row[j])
		if err != nil {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Ints(out)
	return out, nil
}

// ParseFloat parses a numeric cell. Percent signs are tolerated the way the
// analyzer this grew out of tolerated them.
func ParseFloat(s string) (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if raw == "" {
		return 0, errors.New("empty value")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return f, nil
}

// ParseYear parses an integer-like year cell. Whole-valued floats such as
// "2001.0" are accepted; fractional values are not.
func ParseYear(s string) (int, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, errors.New("empty value")
	}
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer year: %q", s)
	}
	return int(f), nil
}
