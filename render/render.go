// Package render draws chart artifacts to PNG on the server: stacked
// histograms with gonum/plot and scatter plots with go-chart.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default image size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 450
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	width  int
	height int
}

// WithSize sets the image size in pixels. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// hexColor parses "#RRGGBB", falling back to grey for an empty string.
func hexColor(hex string) drawing.Color {
	if len(hex) < 4 {
		return drawing.ColorFromHex("888888")
	}
	return drawing.ColorFromHex(hex)
}

// blankPNG writes a plain white image, used when there is nothing to plot.
func blankPNG(w io.Writer, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return png.Encode(w, img)
}
