package engine

import "math"

// ============================================================================
// TEST FIXTURES
// ============================================================================

// rec builds a penguin-shaped record. NaN marks a missing measurement.
func rec(species, island string, bill, flipper, mass float64) Record {
	r := Record{
		Dimensions: map[string]string{"species": species, "island": island},
		Measures:   map[string]float64{},
	}
	set := func(key string, v float64) {
		if !math.IsNaN(v) {
			r.Measures[key] = v
		}
	}
	set("bill_length_mm", bill)
	set("flipper_length_mm", flipper)
	set("body_mass_g", mass)
	return r
}

var na = math.NaN()

// fixtureView has eight rows: one all-null Adelie (row 3) and one Adelie
// with a missing flipper length (row 7).
func fixtureView() RecordView {
	return NewSliceView([]Record{
		rec("Adelie", "Torgersen", 39.1, 181, 3750),
		rec("Adelie", "Torgersen", 39.5, 186, 3800),
		rec("Gentoo", "Biscoe", 46.1, 211, 4500),
		rec("Adelie", "Torgersen", na, na, na),
		rec("Chinstrap", "Dream", 46.5, 192, 3500),
		rec("Gentoo", "Biscoe", 50.0, 230, 5700),
		rec("Chinstrap", "Dream", 50.0, 196, 3900),
		rec("Adelie", "Dream", 36.7, na, 3250),
	})
}

var allSpecies = []string{"Adelie", "Gentoo", "Chinstrap"}

func speciesOf(view RecordView) []string {
	out := make([]string, view.Len())
	for i := range out {
		out[i] = view.Dimension(i, SpeciesKey)
	}
	return out
}
