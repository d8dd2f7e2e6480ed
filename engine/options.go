package engine

// ============================================================================
// BUILDER OPTIONS — Functional options for the chart and table builders
// ============================================================================

// Option configures builder behavior via functional options pattern.
type Option func(*config)

type config struct {
	Title         string
	XLabel        string
	YLabel        string
	BinMode       BinMode
	MaxBins       int
	Border        *BarBorder
	BarMode       string
	Palette       map[string]string // series name → color
	DensityPoints int
}

// WithTitle overrides the artifact title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.Title = title
	}
}

// WithAxisLabels overrides the axis titles. Empty strings keep the default.
func WithAxisLabels(x, y string) Option {
	return func(c *config) {
		if x != "" {
			c.XLabel = x
		}
		if y != "" {
			c.YLabel = y
		}
	}
}

// WithBinMode selects how histogram bin counts become bin edges.
func WithBinMode(mode BinMode) Option {
	return func(c *config) {
		c.BinMode = mode
	}
}

// WithMaxBins caps the histogram bin count. Values <= 0 restore DefaultMaxBins.
func WithMaxBins(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxBins
		}
		c.MaxBins = n
	}
}

// WithBarBorder outlines every histogram bar.
func WithBarBorder(color string, width float64) Option {
	return func(c *config) {
		c.Border = &BarBorder{Color: color, Width: width}
	}
}

// WithPalette maps series names to colors, replacing the default palette.
func WithPalette(palette map[string]string) Option {
	return func(c *config) {
		c.Palette = palette
	}
}

// WithDensityPoints sets how many points each violin outline is sampled at.
func WithDensityPoints(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.DensityPoints = n
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		BinMode:       BinNice,
		MaxBins:       DefaultMaxBins,
		BarMode:       "stack",
		Palette:       SpeciesPalette,
		DensityPoints: 64,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
