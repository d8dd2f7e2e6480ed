package engine

import (
	"errors"
	"fmt"
	"log/slog"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a RecordView
// ============================================================================
// Histogram — shared bins, one stacked series per species
// Scatter   — body mass vs flipper length, one series per species
// Violin    — one violin per species with box overlay and raw points
// ============================================================================

// Scatter axes are fixed.
const (
	ScatterXKey = "body_mass_g"
	ScatterYKey = "flipper_length_mm"
)

// ErrUnknownMeasure is returned when a chart is asked for a column that is
// not a numeric measure of the view.
var ErrUnknownMeasure = errors.New("unknown measure")

// SpeciesPalette colors species consistently across every chart, whatever
// subset the filter leaves.
var SpeciesPalette = map[string]string{
	"Adelie":    "#636EFA",
	"Gentoo":    "#EF553B",
	"Chinstrap": "#00CC96",
}

// Fallback palette for series without a palette entry.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ============================================================================
// HISTOGRAM
// ============================================================================

// BuildHistogram buckets one measure into bins shared by every species and
// returns one series per species. Nulls are skipped, so bar heights sum to
// the number of rows with a value.
func BuildHistogram(view RecordView, measure string, bins int, opts ...Option) (*ChartConfig, error) {
	if !IsMeasure(view, measure) {
		return nil, fmt.Errorf("histogram of %q: %w", measure, ErrUnknownMeasure)
	}
	cfg := applyOptions(opts)

	edges := ComputeBins(MeasureValues(view, measure), bins, cfg.BinMode, cfg.MaxBins)
	slog.Debug("histogram bins",
		"attribute", measure, "requested", bins, "bins", len(edges), "mode", cfg.BinMode, "rows", view.Len())

	chart := &ChartConfig{
		ChartType:  ChartHistogram,
		Title:      cfg.Title,
		XAxis:      measure,
		YAxis:      "count",
		ShowLegend: true,
		ShowGrid:   true,
		BarMode:    cfg.BarMode,
		Bins:       edges,
		RowCount:   view.Len(),
		Series:     []ChartSeries{},
	}
	applyAxisLabels(chart, cfg)

	for i, g := range GroupBy(view, SpeciesKey) {
		counts := CountInBins(edges, MeasureValues(g.View, measure))
		points := make([]ChartPoint, len(edges))
		for j, b := range edges {
			points[j] = ChartPoint{
				Label: BinLabel(b),
				X:     (b.Start + b.End) / 2,
				Value: counts[j],
			}
		}
		chart.Series = append(chart.Series, ChartSeries{
			Name:   g.Key,
			Data:   points,
			Color:  colorFor(cfg, g.Key, i),
			Border: cfg.Border,
		})
	}

	chart.Colors = seriesColors(chart.Series)
	return chart, nil
}

// HistogramTotal sums every bar of a histogram.
func HistogramTotal(chart *ChartConfig) int {
	total := 0
	for _, s := range chart.Series {
		for _, p := range s.Data {
			total += int(p.Value)
		}
	}
	return total
}

// ============================================================================
// SCATTER
// ============================================================================

// BuildScatter plots body mass against flipper length, one series per
// species. Rows missing either value are left out.
func BuildScatter(view RecordView, opts ...Option) *ChartConfig {
	cfg := applyOptions(append([]Option{
		WithTitle("Penguins Scatterplot: Body Mass vs. Flipper Length"),
		WithAxisLabels("Body Mass (g)", "Flipper Length (mm)"),
	}, opts...))

	chart := &ChartConfig{
		ChartType:  ChartScatter,
		Title:      cfg.Title,
		XAxis:      cfg.XLabel,
		YAxis:      cfg.YLabel,
		ShowLegend: true,
		ShowGrid:   true,
		RowCount:   view.Len(),
		Series:     []ChartSeries{},
	}

	for i, g := range GroupBy(view, SpeciesKey) {
		points := make([]ChartPoint, 0, g.View.Len())
		for r := 0; r < g.View.Len(); r++ {
			x, okX := g.View.Measure(r, ScatterXKey)
			y, okY := g.View.Measure(r, ScatterYKey)
			if !okX || !okY {
				continue
			}
			points = append(points, ChartPoint{X: x, Value: y})
		}
		chart.Series = append(chart.Series, ChartSeries{
			Name:  g.Key,
			Data:  points,
			Color: colorFor(cfg, g.Key, i),
		})
	}

	chart.Colors = seriesColors(chart.Series)
	return chart
}

// ============================================================================
// VIOLIN
// ============================================================================

// BuildViolin draws the distribution of one measure per species. Callers
// pass the full dataset: this chart is not tied to the species filter.
func BuildViolin(view RecordView, measure string, opts ...Option) (*ChartConfig, error) {
	if !IsMeasure(view, measure) {
		return nil, fmt.Errorf("violin of %q: %w", measure, ErrUnknownMeasure)
	}
	cfg := applyOptions(append([]Option{
		WithTitle("Attribute Distribution by Species"),
		WithAxisLabels(SpeciesKey, measure),
	}, opts...))

	chart := &ChartConfig{
		ChartType:  ChartViolin,
		Title:      cfg.Title,
		XAxis:      cfg.XLabel,
		YAxis:      cfg.YLabel,
		ShowLegend: true,
		ShowGrid:   true,
		RowCount:   view.Len(),
		Series:     []ChartSeries{},
	}

	for i, g := range GroupBy(view, SpeciesKey) {
		vals := MeasureValues(g.View, measure)
		points := make([]ChartPoint, len(vals))
		for j, v := range vals {
			points[j] = ChartPoint{Label: g.Key, Value: v}
		}
		chart.Series = append(chart.Series, ChartSeries{
			Name:  g.Key,
			Data:  points,
			Color: colorFor(cfg, g.Key, i),
			Violin: &ViolinStats{
				Box:     BoxPlot(vals),
				Density: KDE(vals, cfg.DensityPoints),
				Points:  vals,
			},
		})
	}

	chart.Colors = seriesColors(chart.Series)
	return chart, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func applyAxisLabels(chart *ChartConfig, cfg *config) {
	if cfg.XLabel != "" {
		chart.XAxis = cfg.XLabel
	}
	if cfg.YLabel != "" {
		chart.YAxis = cfg.YLabel
	}
}

func colorFor(cfg *config, name string, i int) string {
	if c, ok := cfg.Palette[name]; ok {
		return c
	}
	return defaultColors[i%len(defaultColors)]
}

func seriesColors(series []ChartSeries) []string {
	colors := make([]string, len(series))
	for i, s := range series {
		colors[i] = s.Color
	}
	return colors
}
