package chart

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
	color.RGBA{R: 227, G: 119, B: 194, A: 255},
	color.RGBA{R: 127, G: 127, B: 127, A: 255},
}

func paletteColor(i int) color.Color { return palette[i%len(palette)] }

// Render builds a gonum plot for a validated spec. Used by the chart
// subcommand for PNG export; the dashboard uses the Plotly backend instead.
func Render(t *dataset.Table, spec Spec) (*plot.Plot, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = spec.DefaultTitle()
	p.Title.TextStyle.Font.Size = vg.Points(14)

	switch spec.Kind {
	case KindScatter:
		return p, renderXY(p, t, spec, false)
	case KindLine:
		return p, renderXY(p, t, spec, true)
	case KindBar:
		return p, renderBar(p, t, spec)
	case KindHistogram:
		return p, renderHistogram(p, t, spec)
	case KindPie:
		return p, renderPie(p, t, spec)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
}

// SavePNG writes a plot to disk at the given size in inches.
func SavePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// RenderDual writes the temperature/CO2 time-series pair as two vertically
// aligned panels sharing the year axis. gonum/plot has no secondary y-axis,
// so the PNG export splits what the dashboard overlays.
func RenderDual(t *dataset.Table, widthIn, heightIn float64, path string) error {
	years, err := t.Floats(dataset.ColYear)
	if err != nil {
		return err
	}
	temps, err := t.Floats(dataset.ColTemperature)
	if err != nil {
		return err
	}
	co2s, err := t.Floats(dataset.ColCO2)
	if err != nil {
		return err
	}

	top := plot.New()
	top.Title.Text = "Temperature Anomaly Over Time"
	top.Title.TextStyle.Font.Size = vg.Points(14)
	top.Y.Label.Text = "Temperature (C)"
	tempLine, err := plotter.NewLine(xyPairs(years, temps))
	if err != nil {
		return fmt.Errorf("temperature line: %w", err)
	}
	tempLine.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	tempLine.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	tempLine.Width = vg.Points(2)
	top.Add(plotter.NewGrid(), tempLine)

	bottom := plot.New()
	bottom.Title.Text = "CO2 Concentration Over Time"
	bottom.Title.TextStyle.Font.Size = vg.Points(14)
	bottom.X.Label.Text = "Year"
	bottom.Y.Label.Text = "Concentration (PPM)"
	co2Line, err := plotter.NewLine(xyPairs(years, co2s))
	if err != nil {
		return fmt.Errorf("co2 line: %w", err)
	}
	co2Line.Color = color.Black
	co2Line.Width = vg.Points(2)
	bottom.Add(plotter.NewGrid(), co2Line)

	img := vgimg.New(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch)
	dc := draw.New(img)
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, draw.Tiles{Rows: 2, Cols: 1}, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func renderXY(p *plot.Plot, t *dataset.Table, spec Spec, asLine bool) error {
	xs, err := numericColumn(t, spec.X)
	if err != nil {
		return err
	}
	ys, err := numericColumn(t, spec.Y)
	if err != nil {
		return err
	}
	p.X.Label.Text = spec.X
	p.Y.Label.Text = spec.Y
	p.Add(plotter.NewGrid())

	groups, names, err := colorGroups(t, spec.Color)
	if err != nil {
		return err
	}
	for gi, idx := range groups {
		pts := make(plotter.XYs, len(idx))
		for k, i := range idx {
			pts[k].X = xs[i]
			pts[k].Y = ys[i]
		}
		if asLine {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("line series: %w", err)
			}
			line.Color = paletteColor(gi)
			line.Width = vg.Points(1.5)
			p.Add(line)
			if names[gi] != "" {
				p.Legend.Add(names[gi], line)
			}
		} else {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return fmt.Errorf("scatter series: %w", err)
			}
			sc.GlyphStyle.Color = paletteColor(gi)
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			if names[gi] != "" {
				p.Legend.Add(names[gi], sc)
			}
		}
	}
	return nil
}

func renderBar(p *plot.Plot, t *dataset.Table, spec Spec) error {
	labels, err := t.Strings(spec.X)
	if err != nil {
		return err
	}
	ys, err := numericColumn(t, spec.Y)
	if err != nil {
		return err
	}
	groups, names, err := colorGroups(t, spec.Color)
	if err != nil {
		return err
	}
	order, series := barSeries(labels, ys, groups)

	// Sub-bars for each color value sit side by side at every x label,
	// matching the grouped layout of the dashboard's bar traces.
	w := vg.Points(40) / vg.Length(len(series))
	for gi, vals := range series {
		bars, err := plotter.NewBarChart(plotter.Values(vals), w)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = paletteColor(gi)
		bars.Offset = w*vg.Length(gi) - w*vg.Length(len(series)-1)/2
		p.Add(bars)
		if names[gi] != "" {
			p.Legend.Add(names[gi], bars)
		}
	}
	p.NominalX(order...)
	p.Y.Label.Text = spec.Y
	return nil
}

// barSeries aligns per-group y values onto the shared label axis. Labels keep
// first-seen order; a group's repeated rows under one label are summed, and
// labels missing from a group contribute a zero-height bar.
func barSeries(labels []string, ys []float64, groups [][]int) (order []string, series [][]float64) {
	slot := make(map[string]int)
	for _, l := range labels {
		if _, ok := slot[l]; !ok {
			slot[l] = len(order)
			order = append(order, l)
		}
	}
	for _, idx := range groups {
		vals := make([]float64, len(order))
		for _, i := range idx {
			vals[slot[labels[i]]] += ys[i]
		}
		series = append(series, vals)
	}
	return order, series
}

func renderHistogram(p *plot.Plot, t *dataset.Table, spec Spec) error {
	xs, err := numericColumn(t, spec.X)
	if err != nil {
		return err
	}
	p.X.Label.Text = spec.X
	groups, names, err := colorGroups(t, spec.Color)
	if err != nil {
		return err
	}
	for gi, idx := range groups {
		vals := make(plotter.Values, len(idx))
		for k, i := range idx {
			vals[k] = xs[i]
		}
		h, err := plotter.NewHist(vals, 20)
		if err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
		h.FillColor = paletteColor(gi)
		p.Add(h)
		if names[gi] != "" {
			p.Legend.Add(names[gi], swatch{paletteColor(gi)})
		}
	}
	return nil
}

func renderPie(p *plot.Plot, t *dataset.Table, spec Spec) error {
	labels, values, err := aggregatePie(t, spec.X, spec.Values)
	if err != nil {
		return err
	}
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return fmt.Errorf("pie chart: values for %q sum to zero", spec.Values)
	}
	p.HideAxes()
	wedges := &pieWedges{labels: labels, values: values, total: total}
	p.Add(wedges)
	for i, label := range labels {
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", label, 100*values[i]/total), swatch{paletteColor(i)})
	}
	return nil
}

// xyPairs zips parallel x/y slices into a plotter point set.
func xyPairs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// numericColumn parses a column as floats with a chart-flavored error.
func numericColumn(t *dataset.Table, name string) ([]float64, error) {
	vals, err := t.Floats(name)
	if err != nil {
		return nil, fmt.Errorf("chart needs numeric values: %w", err)
	}
	return vals, nil
}

// colorGroups splits row indexes by the color column. With no color column
// there is a single unnamed group covering every row.
func colorGroups(t *dataset.Table, colorCol string) (groups [][]int, names []string, err error) {
	if colorCol == "" {
		all := make([]int, t.Len())
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, []string{""}, nil
	}
	vals, err := t.Strings(colorCol)
	if err != nil {
		return nil, nil, err
	}
	byVal := make(map[string][]int)
	var order []string
	for i, v := range vals {
		if _, ok := byVal[v]; !ok {
			order = append(order, v)
		}
		byVal[v] = append(byVal[v], i)
	}
	for _, v := range order {
		groups = append(groups, byVal[v])
		names = append(names, v)
	}
	return groups, names, nil
}
