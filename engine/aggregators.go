package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================================
// AGGREGATORS — Grouping, Binning and Distribution Statistics via RecordView
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Null measures are skipped everywhere; they never count as zero.
// ============================================================================

// DefaultMaxBins caps histogram bin counts when no cap is configured.
const DefaultMaxBins = 1000

// BinMode selects how a requested bin count becomes bin edges.
type BinMode int

const (
	// BinNice treats the count as a target and rounds the bin width to a
	// 1/2/2.5/5 × 10^k step aligned on multiples of the width.
	BinNice BinMode = iota
	// BinExact produces exactly the requested number of equal-width bins
	// spanning [min, max], the last bin closed on the right.
	BinExact
)

// String returns the mode name used in logs.
func (m BinMode) String() string {
	if m == BinExact {
		return "exact"
	}
	return "nice"
}

// ============================================================================
// GROUPING
// ============================================================================

// GroupBy splits a view by one dimension. Groups appear in order of first
// occurrence, and rows inside each group keep their original order.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		sub := newSubView(view, grouped[key])
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: sub.Len(),
			View:  sub,
		})
	}
	return groups
}

// UniqueValues returns distinct non-empty values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// ============================================================================
// MEASURES
// ============================================================================

// MeasureValues collects the non-null values of a measure in view order.
func MeasureValues(view RecordView, measure string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// CountNull counts rows where a measure is missing.
func CountNull(view RecordView, measure string) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if _, ok := view.Measure(i, measure); !ok {
			n++
		}
	}
	return n
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	return floats.Sum(MeasureValues(view, measure))
}

// AvgMeasure computes the mean of the non-null values, 0 when there are none.
func AvgMeasure(view RecordView, measure string) float64 {
	vals := MeasureValues(view, measure)
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// MaxMeasure returns the largest non-null value, 0 when there are none.
func MaxMeasure(view RecordView, measure string) float64 {
	vals := MeasureValues(view, measure)
	if len(vals) == 0 {
		return 0
	}
	return floats.Max(vals)
}

// MinMeasure returns the smallest non-null value, 0 when there are none.
func MinMeasure(view RecordView, measure string) float64 {
	vals := MeasureValues(view, measure)
	if len(vals) == 0 {
		return 0
	}
	return floats.Min(vals)
}

// ============================================================================
// BINNING
// ============================================================================

// ComputeBins turns a requested bin count into equal-width bins covering
// values. A count <= 0 selects Sturges' rule; counts above maxBins are
// capped (maxBins <= 0 means DefaultMaxBins). Non-finite values are
// ignored. Returns nil when no finite value remains.
func ComputeBins(values []float64, n int, mode BinMode, maxBins int) []Bin {
	values = finite(values)
	if len(values) == 0 {
		return nil
	}
	if maxBins <= 0 {
		maxBins = DefaultMaxBins
	}
	if n <= 0 {
		n = sturges(len(values))
	}
	if n > maxBins {
		n = maxBins
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return []Bin{{Start: lo - 0.5, End: hi + 0.5}}
	}

	if mode == BinExact {
		width := (hi - lo) / float64(n)
		bins := make([]Bin, n)
		for i := range bins {
			bins[i] = Bin{Start: lo + float64(i)*width, End: lo + float64(i+1)*width}
		}
		bins[n-1].End = hi
		return bins
	}

	size := niceStep((hi - lo) / float64(n))
	start := math.Floor(lo/size) * size
	count := int(math.Floor((hi-start)/size)) + 1
	bins := make([]Bin, count)
	for i := range bins {
		bins[i] = Bin{Start: start + float64(i)*size, End: start + float64(i+1)*size}
	}
	return bins
}

// finite returns values without NaN and ±Inf. The input is returned as is
// when it holds nothing to drop.
func finite(values []float64) []float64 {
	for i, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			out := append([]float64(nil), values[:i]...)
			for _, v := range values[i+1:] {
				if !math.IsInf(v, 0) && !math.IsNaN(v) {
					out = append(out, v)
				}
			}
			return out
		}
	}
	return values
}

// BinIndex locates the bin holding v, or -1 when v lies outside all bins.
// Bins must be contiguous and equal-width, as ComputeBins returns them.
func BinIndex(bins []Bin, v float64) int {
	n := len(bins)
	if n == 0 || math.IsNaN(v) || v < bins[0].Start || v > bins[n-1].End {
		return -1
	}
	width := (bins[n-1].End - bins[0].Start) / float64(n)
	idx := int((v - bins[0].Start) / width)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// CountInBins counts values per bin.
func CountInBins(bins []Bin, values []float64) []float64 {
	counts := make([]float64, len(bins))
	for _, v := range values {
		if idx := BinIndex(bins, v); idx >= 0 {
			counts[idx]++
		}
	}
	return counts
}

// sturges returns ceil(log2 n) + 1.
func sturges(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// niceStep rounds a raw bin width up to 1, 2, 2.5, 5 or 10 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, f := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= f*mag*(1+1e-9) {
			return f * mag
		}
	}
	return 10 * mag
}

// ============================================================================
// DISTRIBUTIONS
// ============================================================================

// BoxPlot computes Tukey box statistics. Whiskers reach the furthest values
// within 1.5 IQR of the quartiles. Quartiles interpolate linearly.
func BoxPlot(values []float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{}
	}
	x := sortedCopy(values)

	q1 := Quantile(x, 0.25)
	med := Quantile(x, 0.5)
	q3 := Quantile(x, 0.75)
	iqr := q3 - q1
	loFence, hiFence := q1-1.5*iqr, q3+1.5*iqr

	lower, upper := x[0], x[len(x)-1]
	for _, v := range x {
		if v >= loFence {
			lower = v
			break
		}
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] <= hiFence {
			upper = x[i]
			break
		}
	}

	return BoxStats{
		N:            len(x),
		Min:          x[0],
		LowerWhisker: lower,
		Q1:           q1,
		Median:       med,
		Q3:           q3,
		UpperWhisker: upper,
		Max:          x[len(x)-1],
		Mean:         stat.Mean(x, nil),
	}
}

// KDEBandwidth is the rule-of-thumb Gaussian bandwidth
// 1.059 * min(sd, IQR/1.349) * n^(-1/5), falling back to 1 for degenerate data.
func KDEBandwidth(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 1
	}
	x := sortedCopy(values)
	sd := stat.StdDev(x, nil)
	iqr := Quantile(x, 0.75) - Quantile(x, 0.25)
	spread := sd
	if iqr > 0 && iqr/1.349 < spread {
		spread = iqr / 1.349
	}
	if spread <= 0 || math.IsNaN(spread) {
		return 1
	}
	return 1.059 * spread * math.Pow(float64(n), -0.2)
}

// KDE samples a Gaussian kernel density estimate at the given number of
// evenly spaced points spanning [min - 2h, max + 2h].
func KDE(values []float64, points int) []DensityPoint {
	if len(values) == 0 || points < 2 {
		return nil
	}
	h := KDEBandwidth(values)
	lo, hi := floats.Min(values)-2*h, floats.Max(values)+2*h
	step := (hi - lo) / float64(points-1)
	norm := 1 / (float64(len(values)) * h)

	out := make([]DensityPoint, points)
	for i := range out {
		at := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((at - v) / h)
		}
		out[i] = DensityPoint{Value: at, Density: sum * norm}
	}
	return out
}

// Quantile interpolates between the closest ranks of sorted data
// (position p*(n-1)), so the median of an odd-length sample is its middle
// value. gonum's stat.Quantile offers only the empirical and p=k/n variants.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func sortedCopy(values []float64) []float64 {
	x := make([]float64, len(values))
	copy(x, values)
	sort.Float64s(x)
	return x
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatNumber prints whole numbers without decimals and fractions with at
// most two, the way the data file spells them.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(RoundTo2(v), 'f', -1, 64)
}

// BinLabel renders a bin as "[start, end)".
func BinLabel(b Bin) string {
	return "[" + FormatNumber(b.Start) + ", " + FormatNumber(b.End) + ")"
}

// LabelForColumn returns a human-readable label for a column key:
// "body_mass_g" → "Body Mass (g)".
func LabelForColumn(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "_")
	unit := ""
	if n := len(parts); n > 1 {
		switch parts[n-1] {
		case "mm", "g", "kg", "cm":
			unit = parts[n-1]
			parts = parts[:n-1]
		}
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	label := strings.Join(parts, " ")
	if unit != "" {
		label += " (" + unit + ")"
	}
	return label
}
