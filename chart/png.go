// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// The palette the historical charts used.
var (
	seriesBlue = color.NRGBA{B: 0xFF, A: 0xFF}
	seriesRed  = color.NRGBA{R: 0xFF, A: 0xFF}
	idealGray  = color.NRGBA{A: 0x80}
	gridGray   = color.NRGBA{A: 0x4D}
)

// PNG renders specs as 10x6 inch PNG images at 150 DPI.
type PNG struct{}

// Render draws spec to a PNG file at path.
func (PNG) Render(spec *Spec, path string) error {
	if len(spec.Xs) == 0 || len(spec.Series) == 0 {
		return fmt.Errorf("chart: nothing to plot for %q", spec.Title)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridGray
	grid.Horizontal.Color = gridGray
	p.Add(grid)

	// Ticks at exactly the measured thread counts.
	ticks := make([]plot.Tick, len(spec.Xs))
	for i, x := range spec.Xs {
		ticks[i] = plot.Tick{Value: x, Label: fmt.Sprintf("%g", x)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	primaries := 0
	for _, s := range spec.Series {
		if !s.Secondary {
			primaries++
		}
	}

	for _, s := range spec.Series {
		if s.Secondary {
			// Secondary series never touch p's own Y axis; the
			// rightAxis plotter carries its whole scale itself.
			p.Add(&rightAxis{
				xs:    spec.Xs,
				ys:    s.Ys,
				min:   spec.Y2Min,
				max:   spec.Y2Max,
				label: s.Label,
				axis:  spec.Y2Label,
			})
			continue
		}
		pts := xys(spec.Xs, s.Ys)
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		if s.Dashed {
			line.Color = idealGray
			line.Width = vg.Points(1)
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
			p.Add(line)
			if primaries > 1 {
				p.Legend.Add(s.Label, line)
			}
			continue
		}
		line.Color = seriesBlue
		line.Width = vg.Points(2)
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Color = seriesBlue
		p.Add(line, scatter)
		if primaries > 1 {
			p.Legend.Add(s.Label, line, scatter)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if spec.Annotate != "" {
		first := spec.Series[0]
		texts := make([]string, len(first.Ys))
		for i, y := range first.Ys {
			texts[i] = fmt.Sprintf(spec.Annotate, y)
		}
		p.Add(&annotations{xs: spec.Xs, ys: first.Ys, texts: texts})
	}

	canvas := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(10*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(150),
		vgimg.UseBackgroundColor(color.White),
	)}
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// annotations draws a small text label beside each data point.
type annotations struct {
	xs, ys []float64
	texts  []string
}

func (a *annotations) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := plt.X.Tick.Label // an initialized style to borrow
	sty.Font.Size = 9
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YBottom
	off := vg.Points(4)
	for i := range a.xs {
		pt := vg.Point{X: trX(a.xs[i]) + off, Y: trY(a.ys[i]) + off}
		if c.Contains(pt) {
			c.FillText(sty, pt, a.texts[i])
		}
	}
}

// rightAxis plots a series against its own fixed scale anchored to
// the right-hand edge of the plot area, with ticks, an axis label,
// and a legend entry drawn along that edge. The plot's Y axis never
// sees these values, so they do not disturb the left-axis autoscale.
type rightAxis struct {
	xs, ys   []float64
	min, max float64
	label    string
	axis     string
}

func (r *rightAxis) Plot(c draw.Canvas, plt *plot.Plot) {
	if r.max <= r.min {
		return
	}
	trX, _ := plt.Transforms(&c)
	trY := func(v float64) vg.Length {
		f := (v - r.min) / (r.max - r.min)
		return c.Min.Y + vg.Length(f)*(c.Max.Y-c.Min.Y)
	}

	lineSty := draw.LineStyle{Color: seriesRed, Width: vg.Points(2)}
	glyphSty := draw.GlyphStyle{Color: seriesRed, Radius: vg.Points(4), Shape: draw.BoxGlyph{}}

	pts := make([]vg.Point, len(r.xs))
	for i := range r.xs {
		pts[i] = vg.Point{X: trX(r.xs[i]), Y: trY(r.ys[i])}
	}
	c.StrokeLines(lineSty, c.ClipLinesY(pts)...)
	for _, pt := range pts {
		if c.Contains(pt) {
			c.DrawGlyph(glyphSty, pt)
		}
	}

	// Ticks along the right edge, in the series color.
	tickSty := plt.Y.Tick.Label
	tickSty.Color = seriesRed
	tickSty.XAlign = draw.XRight
	tickSty.YAlign = draw.YCenter
	tickLen := vg.Points(4)
	step := (r.max - r.min) / 6
	c.SetLineStyle(draw.LineStyle{Color: seriesRed, Width: vg.Points(0.5)})
	for v := r.min; v <= r.max+step/2; v += step {
		y := trY(v)
		tp := make(vg.Path, 0, 2)
		tp.Move(vg.Point{X: c.Max.X - tickLen, Y: y})
		tp.Line(vg.Point{X: c.Max.X, Y: y})
		c.Stroke(tp)
		c.FillText(tickSty, vg.Point{X: c.Max.X - tickLen - vg.Points(2), Y: y}, fmt.Sprintf("%g", v))
	}

	if r.axis != "" {
		axSty := plt.Y.Label.TextStyle
		axSty.Color = seriesRed
		axSty.Rotation = math.Pi / 2
		axSty.XAlign = draw.XCenter
		axSty.YAlign = draw.YBottom
		mid := c.Min.Y + (c.Max.Y-c.Min.Y)/2
		c.FillText(axSty, vg.Point{X: c.Max.X - vg.Points(24), Y: mid}, r.axis)
	}

	// Legend entry, upper right.
	lgSty := plt.Legend.TextStyle
	lgSty.XAlign = draw.XRight
	lgSty.YAlign = draw.YCenter
	pad := vg.Points(6)
	sample := vg.Points(20)
	y := c.Max.Y - pad - glyphSty.Radius
	x1 := c.Max.X - pad
	x0 := x1 - sample
	lp := make(vg.Path, 0, 2)
	lp.Move(vg.Point{X: x0, Y: y})
	lp.Line(vg.Point{X: x1, Y: y})
	c.SetLineStyle(lineSty)
	c.Stroke(lp)
	c.DrawGlyph(glyphSty, vg.Point{X: x0 + sample/2, Y: y})
	c.FillText(lgSty, vg.Point{X: x0 - pad, Y: y}, r.label)
}
