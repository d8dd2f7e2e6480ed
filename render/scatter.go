package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/penguinlens/engine"
)

// pointStyle draws markers only. A zero StrokeWidth would inherit the
// series default of 1 and join the points in row order.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// dotLegend draws one dot and label per series in the top left corner of
// the canvas. chart.Legend strokes a line sample per series, which a
// markers-only series does not have.
func dotLegend(names []string, colors []drawing.Color) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   chart.DefaultTextColor,
			FontSize:    8,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		}.InheritFrom(defaults)
		style.GetTextOptions().WriteToRenderer(r)

		const pad, gap, dot = 5, 6, 3
		heights := make([]int, len(names))
		width, height := 0, 0
		for i, name := range names {
			tb := r.MeasureText(name)
			heights[i] = tb.Height()
			width = max(width, tb.Width())
			height += tb.Height() + gap
		}
		box := chart.Box{
			Top:    cb.Top,
			Left:   cb.Left,
			Right:  cb.Left + 2*pad + 2*dot + gap + width,
			Bottom: cb.Top + 2*pad + height - gap,
		}
		chart.Draw.Box(r, box, style)

		y := box.Top + pad
		for i, name := range names {
			y += heights[i]
			style.GetTextOptions().WriteToRenderer(r)
			r.Text(name, box.Left+pad+2*dot+gap, y)

			r.SetFillColor(colors[i])
			r.SetStrokeColor(colors[i])
			r.SetStrokeWidth(1)
			r.Circle(dot, box.Left+pad+dot, y-heights[i]/2)
			r.FillStroke()
			y += gap
		}
	}
}

// ScatterPNG draws a scatter ChartConfig. With no points at all it writes
// a blank image of the requested size.
func ScatterPNG(w io.Writer, cfg *engine.ChartConfig, opts ...Option) error {
	o := applyOptions(opts)

	series := []chart.Series{}
	var names []string
	var colors []drawing.Color
	var xs, ys []float64
	for _, s := range cfg.Series {
		if len(s.Data) == 0 {
			continue
		}
		sx := make([]float64, len(s.Data))
		sy := make([]float64, len(s.Data))
		for i, p := range s.Data {
			sx[i], sy[i] = p.X, p.Value
		}
		xs = append(xs, sx...)
		ys = append(ys, sy...)
		col := hexColor(s.Color)
		names = append(names, s.Name)
		colors = append(colors, col)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: sx,
			YValues: sy,
			Style:   pointStyle(col),
		})
	}
	if len(series) == 0 {
		return blankPNG(w, o.width, o.height)
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      o.width,
		Height:     o.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: cfg.XAxis, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: cfg.YAxis, Range: paddedRange(ys)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{dotLegend(names, colors)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("scatter png: %w", err)
	}
	return nil
}

// paddedRange spans the values with 5% margin, and never has zero width.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
