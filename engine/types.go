package engine

// ============================================================================
// ENGINE TYPES — Render-ready artifacts for the penguin dashboard
// ============================================================================
// Record      — generic data row (dimension/measure maps)
// Result      — one view's output: exactly one of chart/table is populated
// ChartConfig — histogram, scatter and violin artifacts
// TableData   — data table and data grid artifacts
// TextData    — "N of M" summary attached to filtered views
//
// Builders never render pixels. PNG backends live in package render.
// ============================================================================

// Chart types produced by the builders.
const (
	ChartHistogram = "histogram"
	ChartScatter   = "scatter"
	ChartViolin    = "violin"
)

// Table styles: the data table and the data grid share one artifact type.
const (
	TableStyleTable = "table"
	TableStyleGrid  = "grid"
)

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// A measure key absent from Measures is a null observation.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output for one view.
type Result struct {
	Success bool   `json:"success"`
	View    string `json:"view"`
	Type    string `json:"type"` // "chart", "table"
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`

	// Exactly one of these is populated based on Type:
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`

	Data   *TextData `json:"data,omitempty"`
	Errors []string  `json:"errors,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is a set of rows sharing one dimension value.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`

	BarMode  string `json:"barMode,omitempty"` // "stack" for histograms
	Bins     []Bin  `json:"bins,omitempty"`
	RowCount int    `json:"rowCount"` // rows the chart was built from, nulls included
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Data   []ChartPoint `json:"data"`
	Color  string       `json:"color,omitempty"`
	Border *BarBorder   `json:"border,omitempty"`
	Violin *ViolinStats `json:"violin,omitempty"`
}

// ChartPoint represents a single data point. Histograms use Label (bin
// range), X (bin centre) and Value (count); scatter points use X and Value.
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// Bin is a half-open histogram bucket [Start, End). The last bin of an
// exact-mode histogram also includes End.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// BarBorder outlines each bar of a histogram.
type BarBorder struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// ViolinStats carries everything needed to draw one violin with its box
// overlay and raw points.
type ViolinStats struct {
	Box     BoxStats       `json:"box"`
	Density []DensityPoint `json:"density"`
	Points  []float64      `json:"points"`
}

// BoxStats are Tukey box-plot statistics.
type BoxStats struct {
	N            int     `json:"n"`
	Min          float64 `json:"min"`
	LowerWhisker float64 `json:"lowerWhisker"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	UpperWhisker float64 `json:"upperWhisker"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
}

// DensityPoint is one sample of a kernel density estimate.
type DensityPoint struct {
	Value   float64 `json:"value"`
	Density float64 `json:"density"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table or grid.
type TableData struct {
	Title         string     `json:"title"`
	Style         string     `json:"style"`         // "table", "grid"
	SelectionMode string     `json:"selectionMode"` // "row", "none"
	Filters       bool       `json:"filters"`
	Columns       []Column   `json:"columns"`
	Rows          [][]string `json:"rows"`
	Summary       *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData summarises how many rows a filtered view is built from.
type TextData struct {
	Value  string       `json:"value"`
	Count  int          `json:"count"`
	Total  int          `json:"total"`
	Groups []GroupCount `json:"groups,omitempty"`
}

// GroupCount is a per-species row count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
