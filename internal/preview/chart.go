package preview

import (
	"context"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/NissesSenap/plotstyle/internal/palette"
	"github.com/NissesSenap/plotstyle/internal/style"
)

func renderChart(ctx context.Context, w io.Writer, t *style.Table, fig *figure, opts Options) error {
	pal, err := palette.New(t)
	if err != nil {
		return err
	}

	graph := chart.Chart{
		Title:        "plotstyle preview",
		Width:        int(fig.width * fig.dpi),
		Height:       int(fig.height * fig.dpi),
		DPI:          fig.dpi,
		ColorPalette: pal,
		XAxis: chart.XAxis{
			Name: "x",
		},
		YAxis: chart.YAxis{
			Name: "y",
		},
	}
	graph.TitleStyle.FontSize = fig.titleSize

	for i := 0; i < opts.Series; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		xs, ys := curve(i, opts.Points)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("series %d", i+1),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: fig.lineWidth,
				StrokeColor: pal.GetSeriesColor(i),
			},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	provider := chart.PNG
	if opts.Format == FormatSVG {
		provider = chart.SVG
	}
	return graph.Render(provider, w)
}
