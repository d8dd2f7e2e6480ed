package engine

import "fmt"

// ============================================================================
// TEXT BUILDER — Row-count summaries for filtered views
// ============================================================================

// BuildSummary describes how many of the total rows a view keeps, with a
// per-species breakdown in order of first appearance.
func BuildSummary(view RecordView, total int) *TextData {
	groups := GroupBy(view, SpeciesKey)
	counts := make([]GroupCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, GroupCount{Key: g.Key, Count: g.Count})
	}

	noun := "penguins"
	if total == 1 {
		noun = "penguin"
	}

	return &TextData{
		Value:  fmt.Sprintf("%d of %d %s", view.Len(), total, noun),
		Count:  view.Len(),
		Total:  total,
		Groups: counts,
	}
}

// ============================================================================
// MEASURE PROFILE — per-species descriptive statistics
// ============================================================================

// MeasureProfile is the descriptive summary of one measure within one group.
type MeasureProfile struct {
	Measure string  `json:"measure"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// GroupProfile is every measure profile for one species.
type GroupProfile struct {
	Key      string           `json:"key"`
	Rows     int              `json:"rows"`
	Measures []MeasureProfile `json:"measures"`
}

// BuildProfiles summarises every measure of the view per species.
func BuildProfiles(view RecordView) []GroupProfile {
	groups := GroupBy(view, SpeciesKey)
	out := make([]GroupProfile, 0, len(groups))
	for _, g := range groups {
		gp := GroupProfile{Key: g.Key, Rows: g.Count}
		for _, m := range view.MeasureKeys() {
			vals := MeasureValues(g.View, m)
			gp.Measures = append(gp.Measures, MeasureProfile{
				Measure: m,
				Count:   len(vals),
				Missing: g.Count - len(vals),
				Mean:    RoundTo2(AvgMeasure(g.View, m)),
				Min:     MinMeasure(g.View, m),
				Max:     MaxMeasure(g.View, m),
			})
		}
		out = append(out, gp)
	}
	return out
}
