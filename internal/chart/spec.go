// Package chart turns a loaded dataset plus field selections into chart
// specifications. Two backends consume a validated Spec: Plotly trace/layout
// JSON for the browser dashboard, and gonum/plot for PNG export.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

// Kind is a supported chart type.
type Kind string

const (
	KindScatter   Kind = "scatter"
	KindLine      Kind = "line"
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindHistogram Kind = "histogram"
)

// Kinds lists the chart types in selector order.
var Kinds = []Kind{KindScatter, KindLine, KindBar, KindPie, KindHistogram}

// ErrUnknownKind indicates a chart type outside the closed selector set.
// Should be unreachable from the UI, but fails loudly when it happens.
var ErrUnknownKind = errors.New("unknown chart kind")

// ParseKind validates a chart-kind string from flags or query parameters.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Spec is a user-configured chart: a kind plus field selections. Y is
// ignored by pie (which requires Values instead) and by histogram. Color is
// optional everywhere it applies.
type Spec struct {
	Kind   Kind
	X      string
	Y      string
	Color  string
	Values string
	Title  string
}

// Validate checks the chart request against a table's columns. Field references that
// do not resolve produce a named unknown-column error rather than silently
// rendering nothing.
func (s Spec) Validate(t *dataset.Table) error {
	if _, err := ParseKind(string(s.Kind)); err != nil {
		return err
	}
	if s.X == "" {
		return errors.New("chart requires an x field")
	}
	if _, err := t.ColumnIndex(s.X); err != nil {
		return fmt.Errorf("x field: %w", err)
	}
	switch s.Kind {
	case KindPie:
		if s.Values == "" {
			return errors.New("pie chart requires a values field")
		}
		if _, err := t.ColumnIndex(s.Values); err != nil {
			return fmt.Errorf("values field: %w", err)
		}
	case KindHistogram:
		// y ignored
	default:
		if s.Y == "" {
			return fmt.Errorf("%s chart requires a y field", s.Kind)
		}
		if _, err := t.ColumnIndex(s.Y); err != nil {
			return fmt.Errorf("y field: %w", err)
		}
	}
	if s.Color != "" && s.Kind != KindPie {
		if _, err := t.ColumnIndex(s.Color); err != nil {
			return fmt.Errorf("color field: %w", err)
		}
	}
	return nil
}

// DefaultTitle mirrors the titles the dashboard shows when none is given.
func (s Spec) DefaultTitle() string {
	if s.Title != "" {
		return s.Title
	}
	switch s.Kind {
	case KindScatter:
		return fmt.Sprintf("%s vs %s", s.Y, s.X)
	case KindLine:
		return fmt.Sprintf("%s over %s", s.Y, s.X)
	case KindBar:
		return fmt.Sprintf("%s by %s", s.Y, s.X)
	case KindPie:
		return fmt.Sprintf("Distribution of %s", s.Values)
	case KindHistogram:
		return fmt.Sprintf("Histogram of %s", s.X)
	}
	return string(s.Kind)
}
