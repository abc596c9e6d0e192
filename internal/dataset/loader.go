package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// NumericPolicy decides what happens when a required numeric column holds a
// value that does not parse.
type NumericPolicy string

const (
	// PolicyReject fails the whole load on the first bad value, naming the
	// column and row. The default.
	PolicyReject NumericPolicy = "reject"
	// PolicySkip drops the offending row and records a warning on the table.
	PolicySkip NumericPolicy = "skip"
)

// ParsePolicy validates a policy string from config or flags.
func ParsePolicy(s string) (NumericPolicy, error) {
	switch NumericPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyReject, "":
		return PolicyReject, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unsupported numeric policy %q (use 'reject'|'skip')", s)
	}
}

// Options controls dataset loading.
type Options struct {
	// Delimiter for CSV. If 0, sniffed from the filename ('\t' for .tsv).
	Delimiter rune
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// NumericPolicy for bad values in required numeric columns.
	NumericPolicy NumericPolicy
	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// DefaultOptions returns the defaults used by the CLI and the dashboard.
func DefaultOptions() Options {
	return Options{NumericPolicy: PolicyReject}
}

// Loader reads one tabular format into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(r io.Reader, filename string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// ErrUnsupported indicates no registered loader handles the file format.
var ErrUnsupported = errors.New("unsupported dataset format")

// Read loads a dataset from a stream, choosing the loader by filename.
func Read(r io.Reader, filename string, opt Options) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(filename) {
			return l.Load(r, filename, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(filename))
}

// Load loads a dataset from a file on disk.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f, path, opt)
}

// finishTable runs the shared post-parse pipeline: build the table from the
// raw header and rows, verify the required columns, then apply the numeric
// policy to the required numeric columns.
func finishTable(name string, header []string, rows [][]string, opt Options) (*Table, error) {
	if opt.MaxRows > 0 && len(rows) > opt.MaxRows {
		rows = rows[:opt.MaxRows]
	}
	t, err := New(filepath.Base(name), header, rows)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(t); err != nil {
		return nil, err
	}
	return applyNumericPolicy(t, opt)
}

// checkRequired fails fast, naming every missing required column at once.
func checkRequired(t *Table) error {
	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("dataset is missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

func applyNumericPolicy(t *Table, opt Options) (*Table, error) {
	policy := opt.NumericPolicy
	if policy == "" {
		policy = PolicyReject
	}
	yearIdx, _ := t.ColumnIndex(ColYear)
	tempIdx, _ := t.ColumnIndex(ColTemperature)
	co2Idx, _ := t.ColumnIndex(ColCO2)

	keep := make([]int, 0, len(t.Rows))
	var warnings []string
	for i, row := range t.Rows {
		bad := rowNumericError(row, yearIdx, tempIdx, co2Idx)
		if bad == nil {
			keep = append(keep, i)
			continue
		}
		if policy == PolicyReject {
			return nil, fmt.Errorf("row %d: %w", i+1, bad)
		}
		warnings = append(warnings, fmt.Sprintf("skipped row %d: %v", i+1, bad))
	}
	if len(keep) == len(t.Rows) {
		return t, nil
	}
	out := t.Subset(keep)
	out.Warnings = append(t.Warnings, warnings...)
	return out, nil
}

func rowNumericError(row []string, yearIdx, tempIdx, co2Idx int) error {
	if _, err := ParseYear(row[yearIdx]); err != nil {
		return fmt.Errorf("column %q: %w", ColYear, err)
	}
	if _, err := ParseFloat(row[tempIdx]); err != nil {
		return fmt.Errorf("column %q: %w", ColTemperature, err)
	}
	if _, err := ParseFloat(row[co2Idx]); err != nil {
		return fmt.Errorf("column %q: %w", ColCO2, err)
	}
	return nil
}
