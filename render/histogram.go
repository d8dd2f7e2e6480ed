package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spektr-org/penguinlens/engine"
)

// maxTickLabels bounds how many bin labels the x axis prints.
const maxTickLabels = 10

// HistogramPNG draws a histogram ChartConfig as stacked bars, one layer
// per series, sharing the chart's bins.
func HistogramPNG(w io.Writer, chart *engine.ChartConfig, opts ...Option) error {
	o := applyOptions(opts)

	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XAxis
	p.Y.Label.Text = chart.YAxis
	p.Legend.Top = true
	p.Y.Min = 0

	width := pxToPt(o.width)
	height := pxToPt(o.height)

	n := len(chart.Bins)
	if n > 0 {
		barWidth := width * 0.8 / vg.Length(n)
		if barWidth < 1 {
			barWidth = 1
		}

		var below *plotter.BarChart
		for _, s := range chart.Series {
			vals := make(plotter.Values, n)
			for i := 0; i < n && i < len(s.Data); i++ {
				vals[i] = s.Data[i].Value
			}
			bars, err := plotter.NewBarChart(vals, barWidth)
			if err != nil {
				return fmt.Errorf("histogram %s: %w", s.Name, err)
			}
			bars.Color = hexColor(s.Color)
			bars.LineStyle.Color = color.White
			bars.LineStyle.Width = vg.Points(0.5)
			if s.Border != nil {
				bars.LineStyle.Color = namedColor(s.Border.Color)
				bars.LineStyle.Width = vg.Points(s.Border.Width)
			}
			if below != nil {
				bars.StackOn(below)
			}
			p.Add(bars)
			p.Legend.Add(s.Name, bars)
			below = bars
		}
		p.NominalX(tickLabels(chart.Bins)...)
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("histogram png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("histogram png: %w", err)
	}
	return nil
}

// tickLabels labels bins by their start, thinning labels so at most
// maxTickLabels are printed.
func tickLabels(bins []engine.Bin) []string {
	step := (len(bins) + maxTickLabels - 1) / maxTickLabels
	if step < 1 {
		step = 1
	}
	labels := make([]string, len(bins))
	for i, b := range bins {
		if i%step == 0 {
			labels[i] = engine.FormatNumber(b.Start)
		}
	}
	return labels
}

// pxToPt converts pixels at the 96 dpi gonum/plot uses for PNG to points.
func pxToPt(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

func namedColor(name string) color.Color {
	switch name {
	case "", "black":
		return color.Black
	case "white":
		return color.White
	default:
		return hexColor(name)
	}
}
