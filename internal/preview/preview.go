// Package preview renders a small sample figure with a style table applied,
// either through gonum/plot or through go-chart.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/NissesSenap/plotstyle/internal/style"
)

var (
	ErrUnknownEngine = errors.New("unknown preview engine")
	ErrUnknownFormat = errors.New("unknown preview format")
)

const (
	EngineGonum = "gonum"
	EngineChart = "chart"

	FormatPNG = "png"
	FormatSVG = "svg"
)

type Options struct {
	Engine string
	Format string
	Series int // number of curves
	Points int // samples per curve
}

func (o Options) validate() error {
	switch o.Engine {
	case EngineGonum, EngineChart:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, o.Engine)
	}
	switch o.Format {
	case FormatPNG, FormatSVG:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}
	if o.Series < 1 {
		return fmt.Errorf("series must be at least 1, got %d", o.Series)
	}
	if o.Points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", o.Points)
	}
	return nil
}

// Render draws the sample figure for t and writes it to w.
func Render(ctx context.Context, w io.Writer, t *style.Table, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	fig, err := readFigure(t)
	if err != nil {
		return err
	}

	switch opts.Engine {
	case EngineChart:
		return renderChart(ctx, w, t, fig, opts)
	default:
		return renderGonum(ctx, w, fig, opts)
	}
}

// curve samples a damped sine wave n times, shifted per series.
func curve(series, n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	phase := float64(series) * math.Pi / 4
	for i := 0; i < n; i++ {
		x := 10 * float64(i) / float64(n-1)
		xs[i] = x
		ys[i] = math.Exp(-x/8) * math.Sin(x+phase)
	}
	return xs, ys
}

// figure holds the settings both engines read, with fallbacks applied.
type figure struct {
	width, height float64 // inches
	dpi           float64

	lineWidth  float64
	markerSize float64
	fontSize   float64
	titleSize  float64
	labelSize  float64
	tickSize   float64

	figureFace colorful.Color
	axesFace   colorful.Color
	axesEdge   colorful.Color
	axesWidth  float64
	labelColor colorful.Color
	tickColor  colorful.Color
	tickLength float64

	grid          bool
	gridBelow     bool
	gridColor     colorful.Color
	gridWidth     float64
	gridLineStyle string

	cycle []colorful.Color
}

// fontScale holds the relative size names and their factor of font.size.
var fontScale = map[string]float64{
	"xx-small": 0.579,
	"x-small":  0.694,
	"small":    0.833,
	"medium":   1.0,
	"large":    1.2,
	"x-large":  1.44,
	"xx-large": 1.728,
	"larger":   1.2,
	"smaller":  0.833,
}

func readFigure(t *style.Table) (*figure, error) {
	r := reader{t: t}
	f := &figure{}

	size := r.floats("figure.figsize", []float64{6.4, 4.8})
	if r.err == nil && len(size) != 2 {
		r.err = fmt.Errorf("figure.figsize: expected 2 numbers, got %d", len(size))
	}
	if len(size) == 2 {
		f.width, f.height = size[0], size[1]
	}

	f.dpi = r.float("savefig.dpi", 100)
	f.lineWidth = r.float("lines.linewidth", 1.5)
	f.markerSize = r.float("lines.markersize", 6)
	f.fontSize = r.float("font.size", 10)
	f.titleSize = r.fontSize("axes.titlesize", "large", f.fontSize)
	f.labelSize = r.fontSize("axes.labelsize", "medium", f.fontSize)
	f.tickSize = r.fontSize("xtick.labelsize", "medium", f.fontSize)

	f.figureFace = r.color("figure.facecolor", "white")
	f.axesFace = r.color("axes.facecolor", "white")
	f.axesEdge = r.color("axes.edgecolor", "black")
	f.axesWidth = r.float("axes.linewidth", 0.8)
	f.labelColor = r.color("axes.labelcolor", "black")
	f.tickColor = r.color("xtick.color", "black")
	f.tickLength = r.float("xtick.major.size", 3.5)

	f.grid = r.bool("axes.grid", false)
	f.gridBelow = r.bool("axes.axisbelow", true)
	f.gridColor = r.color("grid.color", "b0b0b0")
	f.gridWidth = r.float("grid.linewidth", 0.8)
	f.gridLineStyle = t.LookupOr("grid.linestyle", "-").String()

	if t.Has("axes.prop_cycle") || t.Has("axes.color_cycle") {
		cycle, err := t.CycleColors()
		if err != nil && r.err == nil {
			r.err = err
		}
		f.cycle = cycle
	}
	if len(f.cycle) == 0 {
		f.cycle = fallbackCycle()
	}

	if r.err != nil {
		return nil, r.err
	}
	if f.width <= 0 || f.height <= 0 || f.dpi <= 0 {
		return nil, fmt.Errorf("figure size %vx%v at %v dpi is not drawable", f.width, f.height, f.dpi)
	}
	return f, nil
}

// showGrid is axes.grid unless grid.linestyle hides the lines.
func (f *figure) showGrid() bool {
	return f.grid && !hiddenLine(f.gridLineStyle)
}

func fallbackCycle() []colorful.Color {
	var out []colorful.Color
	for _, tok := range []string{"tab:blue", "tab:orange", "tab:green", "tab:red", "tab:purple"} {
		c, _ := style.ParseColor(tok)
		out = append(out, c)
	}
	return out
}

// reader looks settings up with fallbacks and keeps the first error.
type reader struct {
	t   *style.Table
	err error
}

func (r *reader) keep(key string, err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (r *reader) float(key string, def float64) float64 {
	if !r.t.Has(key) {
		return def
	}
	v, err := r.t.LookupOr(key, "").Float()
	r.keep(key, err)
	return v
}

func (r *reader) floats(key string, def []float64) []float64 {
	if !r.t.Has(key) {
		return def
	}
	v, err := r.t.LookupOr(key, "").Floats()
	r.keep(key, err)
	return v
}

func (r *reader) bool(key string, def bool) bool {
	if !r.t.Has(key) {
		return def
	}
	v, err := r.t.LookupOr(key, "").Bool()
	r.keep(key, err)
	return v
}

func (r *reader) color(key, def string) colorful.Color {
	c, err := r.t.LookupOr(key, def).Color()
	r.keep(key, err)
	return c
}

func (r *reader) fontSize(key, def string, base float64) float64 {
	v := r.t.LookupOr(key, def).String()
	if scale, ok := fontScale[v]; ok {
		return base * scale
	}
	f, err := style.Value(v).Float()
	r.keep(key, err)
	return f
}
