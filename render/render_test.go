package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/penguinlens/engine"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleView() engine.RecordView {
	mk := func(species string, flipper, mass float64) engine.Record {
		return engine.Record{
			Dimensions: map[string]string{"species": species},
			Measures:   map[string]float64{"flipper_length_mm": flipper, "body_mass_g": mass},
		}
	}
	return engine.NewSliceView([]engine.Record{
		mk("Adelie", 181, 3750),
		mk("Adelie", 186, 3800),
		mk("Gentoo", 211, 4500),
		mk("Gentoo", 230, 5700),
		mk("Chinstrap", 192, 3500),
	})
}

func decodeSize(t *testing.T, b []byte) (int, int) {
	t.Helper()
	require.True(t, bytes.HasPrefix(b, pngMagic), "not a PNG")
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

// ============================================================================
// HISTOGRAM
// ============================================================================

func TestHistogramPNG(t *testing.T) {
	chart, err := engine.BuildHistogram(sampleView(), "body_mass_g", 10,
		engine.WithBinMode(engine.BinExact),
		engine.WithTitle("Seaborn Histogram"),
		engine.WithAxisLabels("body_mass_g", "Count"),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HistogramPNG(&buf, chart, WithSize(640, 360)))
	w, h := decodeSize(t, buf.Bytes())
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)
}

func TestHistogramPNG_WithBorder(t *testing.T) {
	chart, err := engine.BuildHistogram(sampleView(), "flipper_length_mm", 20, engine.WithBarBorder("black", 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HistogramPNG(&buf, chart))
	w, _ := decodeSize(t, buf.Bytes())
	assert.Equal(t, DefaultWidth, w)
}

func TestHistogramPNG_Empty(t *testing.T) {
	chart, err := engine.BuildHistogram(engine.FilterSpecies(sampleView(), nil), "body_mass_g", 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HistogramPNG(&buf, chart))
	decodeSize(t, buf.Bytes())
}

func TestTickLabels_Thinned(t *testing.T) {
	bins := engine.ComputeBins([]float64{0, 100}, 40, engine.BinExact, 0)
	labels := tickLabels(bins)
	require.Len(t, labels, 40)
	printed := 0
	for _, l := range labels {
		if l != "" {
			printed++
		}
	}
	assert.LessOrEqual(t, printed, maxTickLabels)
	assert.Equal(t, "0", labels[0])
}

// ============================================================================
// SCATTER
// ============================================================================

func TestScatterPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScatterPNG(&buf, engine.BuildScatter(sampleView())))
	w, h := decodeSize(t, buf.Bytes())
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
}

func TestScatterPNG_SinglePoint(t *testing.T) {
	chart := engine.BuildScatter(engine.FilterSpecies(sampleView(), []string{"Chinstrap"}))
	var buf bytes.Buffer
	require.NoError(t, ScatterPNG(&buf, chart))
	decodeSize(t, buf.Bytes())
}

func TestScatterPNG_EmptyIsBlank(t *testing.T) {
	chart := engine.BuildScatter(engine.FilterSpecies(sampleView(), []string{}))
	var buf bytes.Buffer
	require.NoError(t, ScatterPNG(&buf, chart, WithSize(320, 200)))
	w, h := decodeSize(t, buf.Bytes())
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestScatterPNG_MarkersOnly(t *testing.T) {
	chart := &engine.ChartConfig{
		ChartType: engine.ChartScatter,
		Series: []engine.ChartSeries{{
			Name:  "Adelie",
			Color: "#FF0000",
			Data:  []engine.ChartPoint{{X: 0, Value: 0}, {X: 10, Value: 10}},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, ScatterPNG(&buf, chart, WithSize(400, 400)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	isDot := func(x, y int) bool {
		r, g, b, _ := img.At(x, y).RGBA()
		return r>>8 > 200 && g>>8 < 100 && b>>8 < 100
	}
	// The lower left dot maximises y-x, the upper right one x-y. The
	// legend dot sits in the top left corner and wins neither.
	var low, high image.Point
	lowScore, highScore := -1<<30, -1<<30
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isDot(x, y) {
				continue
			}
			if y-x > lowScore {
				lowScore, low = y-x, image.Pt(x, y)
			}
			if x-y > highScore {
				highScore, high = x-y, image.Pt(x, y)
			}
		}
	}
	require.Greater(t, high.X-low.X, 100, "dots not found")

	for _, f := range []float64{0.25, 0.5, 0.75} {
		cx := low.X + int(f*float64(high.X-low.X))
		cy := low.Y + int(f*float64(high.Y-low.Y))
		for y := cy - 3; y <= cy+3; y++ {
			for x := cx - 3; x <= cx+3; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				assert.True(t, r>>8 > 240 && g>>8 > 240 && b>>8 > 240,
					"pixel (%d,%d) between points is not background", x, y)
			}
		}
	}
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange([]float64{10, 10})
	assert.Equal(t, 9.0, r.Min)
	assert.Equal(t, 11.0, r.Max)

	r = paddedRange([]float64{0, 100})
	assert.Equal(t, -5.0, r.Min)
	assert.Equal(t, 105.0, r.Max)
}
