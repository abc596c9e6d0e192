package chart

import (
	"fmt"
	"sort"

	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
)

// Trace and Layout are marshaled to JSON and handed to Plotly in the page.
// The Go side builds specifications only; all drawing happens client-side.
type (
	Trace  map[string]any
	Layout map[string]any
)

// Plotly builds the traces and layout for a validated custom-chart spec.
func Plotly(t *dataset.Table, spec Spec) ([]Trace, Layout, error) {
	if err := spec.Validate(t); err != nil {
		return nil, nil, err
	}
	layout := Layout{"title": map[string]any{"text": spec.DefaultTitle()}}

	switch spec.Kind {
	case KindPie:
		labels, values, err := aggregatePie(t, spec.X, spec.Values)
		if err != nil {
			return nil, nil, err
		}
		return []Trace{{"type": "pie", "labels": labels, "values": values}}, layout, nil
	case KindHistogram:
		traces, err := groupedTraces(t, spec, func(x, _ []any) Trace {
			return Trace{"type": "histogram", "x": x, "nbinsx": 20}
		})
		return traces, layout, err
	case KindBar:
		traces, err := groupedTraces(t, spec, func(x, y []any) Trace {
			return Trace{"type": "bar", "x": x, "y": y}
		})
		return traces, layout, err
	case KindLine:
		traces, err := groupedTraces(t, spec, func(x, y []any) Trace {
			return Trace{"type": "scatter", "mode": "lines", "x": x, "y": y}
		})
		return traces, layout, err
	default: // KindScatter; Validate already rejected unknown kinds
		traces, err := groupedTraces(t, spec, func(x, y []any) Trace {
			return Trace{"type": "scatter", "mode": "markers", "x": x, "y": y}
		})
		return traces, layout, err
	}
}

// PlotlyDual builds the dual-axis temperature/CO2 time series over the whole
// dataset: temperature on the left axis, CO2 overlaid on the right.
func PlotlyDual(t *dataset.Table) ([]Trace, Layout, error) {
	years, err := columnValues(t, dataset.ColYear)
	if err != nil {
		return nil, nil, err
	}
	temps, err := columnValues(t, dataset.ColTemperature)
	if err != nil {
		return nil, nil, err
	}
	co2s, err := columnValues(t, dataset.ColCO2)
	if err != nil {
		return nil, nil, err
	}
	traces := []Trace{
		{
			"type": "scatter", "mode": "lines", "name": "Temperature (C)",
			"x": years, "y": temps,
			"line": map[string]any{"color": "red", "dash": "dash"},
		},
		{
			"type": "scatter", "mode": "lines", "name": "CO2 (PPM)",
			"x": years, "y": co2s, "yaxis": "y2",
			"line": map[string]any{"color": "black"},
		},
	}
	layout := Layout{
		"title": map[string]any{"text": "Temperature and CO2 Concentration Over Time (Entire Dataset)"},
		"xaxis": map[string]any{"title": map[string]any{"text": "Year"}},
		"yaxis": map[string]any{"title": map[string]any{"text": "Temperature (C)"}},
		"yaxis2": map[string]any{
			"title":      map[string]any{"text": "Concentration (PPM)"},
			"overlaying": "y",
			"side":       "right",
		},
		"legend": map[string]any{"orientation": "h", "x": 0.5, "y": 1.2},
	}
	return traces, layout, nil
}

// PlotlyChoropleth builds the country map: color is temperature anomaly,
// hover shows CO2 alongside it. Selected-country rows get an outline.
func PlotlyChoropleth(rows []climate.MapRow, selected string) ([]Trace, Layout) {
	locations := make([]string, len(rows))
	z := make([]float64, len(rows))
	custom := make([][]any, len(rows))
	for i, r := range rows {
		locations[i] = r.Country
		z[i] = r.TempAnomaly
		custom[i] = []any{r.AvgCO2, r.Highlight}
	}
	trace := Trace{
		"type":         "choropleth",
		"locations":    locations,
		"locationmode": "country names",
		"z":            z,
		"colorscale":   "Viridis",
		"customdata":   custom,
		"hovertemplate": "%{location}<br>temperature_anomaly: %{z:.2f}" +
			"<br>average_co2: %{customdata[0]:.2f}<br>%{customdata[1]}<extra></extra>",
	}
	if selected != "" {
		trace["marker"] = map[string]any{
			"line": map[string]any{"color": "black", "width": 0.5},
		}
	}
	layout := Layout{
		"title": map[string]any{"text": "Predicted Temperature and CO2 Levels by Country"},
		"geo":   map[string]any{"showframe": false},
	}
	return []Trace{trace}, layout
}

// columnValues returns a column for JSON output: numbers where cells parse,
// raw strings otherwise.
func columnValues(t *dataset.Table, name string) ([]any, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		if f, err := dataset.ParseFloat(v); err == nil {
			out[i] = f
		} else {
			out[i] = v
		}
	}
	return out, nil
}

// groupedTraces emits one trace per distinct color value, or a single trace
// when no color field is set.
func groupedTraces(t *dataset.Table, spec Spec, build func(x, y []any) Trace) ([]Trace, error) {
	xs, err := columnValues(t, spec.X)
	if err != nil {
		return nil, err
	}
	var ys []any
	if spec.Y != "" && spec.Kind != KindHistogram {
		if ys, err = columnValues(t, spec.Y); err != nil {
			return nil, err
		}
	}
	if spec.Color == "" {
		return []Trace{build(xs, ys)}, nil
	}

	colors, err := t.Strings(spec.Color)
	if err != nil {
		return nil, err
	}
	byColor := make(map[string][]int)
	for i, c := range colors {
		byColor[c] = append(byColor[c], i)
	}
	keys := make([]string, 0, len(byColor))
	for k := range byColor {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	traces := make([]Trace, 0, len(keys))
	for _, k := range keys {
		idx := byColor[k]
		gx := make([]any, len(idx))
		var gy []any
		if ys != nil {
			gy = make([]any, len(idx))
		}
		for j, i := range idx {
			gx[j] = xs[i]
			if gy != nil {
				gy[j] = ys[i]
			}
		}
		tr := build(gx, gy)
		tr["name"] = k
		traces = append(traces, tr)
	}
	return traces, nil
}

// aggregatePie sums the values field per distinct label, sorted by label.
func aggregatePie(t *dataset.Table, namesCol, valuesCol string) ([]string, []float64, error) {
	names, err := t.Strings(namesCol)
	if err != nil {
		return nil, nil, err
	}
	values, err := t.Floats(valuesCol)
	if err != nil {
		return nil, nil, fmt.Errorf("pie values: %w", err)
	}
	sums := make(map[string]float64)
	for i, n := range names {
		sums[n] += values[i]
	}
	labels := make([]string, 0, len(sums))
	for n := range sums {
		labels = append(labels, n)
	}
	sort.Strings(labels)
	out := make([]float64, len(labels))
	for i, n := range labels {
		out[i] = sums[n]
	}
	return labels, out, nil
}
