// Package palette adapts a style table to go-chart's ColorPalette.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/NissesSenap/plotstyle/internal/style"
)

// Palette is a chart.ColorPalette backed by a style table
type Palette struct {
	background drawing.Color
	canvas     drawing.Color
	stroke     drawing.Color
	axis       drawing.Color
	text       drawing.Color
	series     []drawing.Color
}

var _ chart.ColorPalette = (*Palette)(nil)

// New reads the figure, axes and cycle colors from t. Keys the table does
// not set keep go-chart's defaults; keys that are set but unparseable are
// an error.
func New(t *style.Table) (*Palette, error) {
	p := &Palette{
		background: chart.DefaultBackgroundColor,
		canvas:     chart.DefaultCanvasColor,
		stroke:     chart.DefaultBackgroundStrokeColor,
		axis:       chart.DefaultAxisColor,
		text:       chart.DefaultTextColor,
	}

	fields := []struct {
		key string
		dst *drawing.Color
	}{
		{"figure.facecolor", &p.background},
		{"axes.facecolor", &p.canvas},
		{"axes.edgecolor", &p.stroke},
		{"axes.edgecolor", &p.axis},
		{"axes.labelcolor", &p.text},
	}
	for _, f := range fields {
		if !t.Has(f.key) {
			continue
		}
		c, err := t.Color(f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = Convert(c)
	}

	if t.Has("axes.prop_cycle") || t.Has("axes.color_cycle") {
		colors, err := t.CycleColors()
		if err != nil {
			return nil, fmt.Errorf("color cycle: %w", err)
		}
		for _, c := range colors {
			p.series = append(p.series, Convert(c))
		}
	}

	return p, nil
}

// Convert turns a colorful.Color into an opaque drawing.Color
func Convert(c colorful.Color) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func (p *Palette) BackgroundColor() drawing.Color {
	return p.background
}

func (p *Palette) BackgroundStrokeColor() drawing.Color {
	return p.stroke
}

func (p *Palette) CanvasColor() drawing.Color {
	return p.canvas
}

func (p *Palette) CanvasStrokeColor() drawing.Color {
	return p.stroke
}

func (p *Palette) AxisStrokeColor() drawing.Color {
	return p.axis
}

func (p *Palette) TextColor() drawing.Color {
	return p.text
}

// GetSeriesColor cycles through the table's colors, or go-chart's own
// alternates when the table has no cycle.
func (p *Palette) GetSeriesColor(index int) drawing.Color {
	if len(p.series) == 0 {
		return chart.GetAlternateColor(index)
	}
	if index < 0 {
		index = -index
	}
	return p.series[index%len(p.series)]
}

// SeriesCount is the length of the color cycle, 0 when it comes from go-chart
func (p *Palette) SeriesCount() int {
	return len(p.series)
}
