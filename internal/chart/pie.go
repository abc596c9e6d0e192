package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieWedges draws a pie chart directly on the canvas. gonum/plot has no pie
// plotter, so this implements plot.Plotter with vg arc paths. Wedges start
// at 12 o'clock and proceed clockwise, matching the usual pie orientation.
type pieWedges struct {
	labels []string
	values []float64
	total  float64
}

var _ plot.Plotter = (*pieWedges)(nil)

func (w *pieWedges) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := c.Max.X - c.Min.X
	if h := c.Max.Y - c.Min.Y; h < radius {
		radius = h
	}
	radius *= 0.4

	start := math.Pi / 2
	for i, v := range w.values {
		angle := -2 * math.Pi * v / w.total
		var path vg.Path
		path.Move(center)
		path.Line(vg.Point{
			X: center.X + radius*vg.Length(math.Cos(start)),
			Y: center.Y + radius*vg.Length(math.Sin(start)),
		})
		path.Arc(center, radius, start, angle)
		path.Close()
		c.SetColor(paletteColor(i))
		c.Fill(path)
		start += angle
	}
}

// swatch is a solid-color legend thumbnail for pie wedges.
type swatch struct {
	color color.Color
}

var _ plot.Thumbnailer = swatch{}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	poly := c.ClipPolygonY(pts)
	c.FillPolygon(s.color, poly)
}
