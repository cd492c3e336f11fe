package preview

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

func renderGonum(ctx context.Context, w io.Writer, fig *figure, opts Options) error {
	p := plot.New()
	p.BackgroundColor = fig.figureFace

	p.Title.Text = "plotstyle preview"
	p.Title.TextStyle.Font.Size = vg.Points(fig.titleSize)
	p.Title.TextStyle.Color = fig.labelColor

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.LineStyle.Color = fig.axesEdge
		axis.LineStyle.Width = vg.Points(fig.axesWidth)
		axis.Label.TextStyle.Font.Size = vg.Points(fig.labelSize)
		axis.Label.TextStyle.Color = fig.labelColor
		axis.Tick.Label.Font.Size = vg.Points(fig.tickSize)
		axis.Tick.Label.Color = fig.tickColor
		axis.Tick.LineStyle.Color = fig.tickColor
		axis.Tick.Length = vg.Points(fig.tickLength)
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.TextStyle.Font.Size = vg.Points(fig.tickSize)
	p.Legend.Top = true

	p.Add(axesFill{color: fig.axesFace})

	var grid *plotter.Grid
	if fig.showGrid() {
		grid = plotter.NewGrid()
		for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
			ls.Color = fig.gridColor
			ls.Width = vg.Points(fig.gridWidth)
			ls.Dashes = dashes(fig.gridLineStyle, fig.gridWidth)
		}
		if fig.gridBelow {
			p.Add(grid)
		}
	}

	for i := 0; i < opts.Series; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		xs, ys := curve(i, opts.Points)
		xys := make(plotter.XYs, len(xs))
		for j := range xs {
			xys[j].X, xys[j].Y = xs[j], ys[j]
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
		c := fig.cycle[i%len(fig.cycle)]
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(fig.lineWidth)
		points.GlyphStyle.Color = c
		points.GlyphStyle.Radius = vg.Points(fig.markerSize / 2)
		points.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("series %d", i+1), line, points)
	}

	if grid != nil && !fig.gridBelow {
		p.Add(grid)
	}

	width := vg.Length(fig.width) * vg.Inch
	height := vg.Length(fig.height) * vg.Inch

	switch opts.Format {
	case FormatSVG:
		c := vgsvg.New(width, height)
		p.Draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(fig.dpi)))
		p.Draw(draw.New(c))
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	}
}

// axesFill paints the data area, standing in for axes.facecolor which
// gonum/plot has no field for.
type axesFill struct {
	color color.Color
}

func (f axesFill) Plot(c draw.Canvas, _ *plot.Plot) {
	c.FillPolygon(f.color, []vg.Point{
		c.Min,
		{X: c.Max.X, Y: c.Min.Y},
		c.Max,
		{X: c.Min.X, Y: c.Max.Y},
	})
}

// hiddenLine reports whether a line style token means no line at all.
func hiddenLine(lineStyle string) bool {
	switch strings.ToLower(strings.TrimSpace(lineStyle)) {
	case "none", "":
		return true
	}
	return false
}

// dashes converts a line style token into a dash pattern scaled by width.
func dashes(lineStyle string, width float64) []vg.Length {
	var pattern []float64
	switch lineStyle {
	case "--", "dashed":
		pattern = []float64{3.7, 1.6}
	case "-.", "dashdot":
		pattern = []float64{6.4, 1.6, 1, 1.6}
	case ":", "dotted":
		pattern = []float64{1, 1.65}
	default:
		return nil
	}
	out := make([]vg.Length, len(pattern))
	for i, d := range pattern {
		out[i] = vg.Points(d * width)
	}
	return out
}
