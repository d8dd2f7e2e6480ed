package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// SPECIES FILTER
// ============================================================================

func TestFilterSpecies_ThreeRowScenario(t *testing.T) {
	view := NewSliceView([]Record{
		rec("Adelie", "Torgersen", 39.1, 181, 3750),
		rec("Gentoo", "Biscoe", 46.1, 211, 4500),
		rec("Adelie", "Torgersen", 39.5, 186, 3800),
	})

	got := FilterSpecies(view, []string{"Gentoo"})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Gentoo", got.Dimension(0, SpeciesKey))
	mass, ok := got.Measure(0, "body_mass_g")
	assert.True(t, ok)
	assert.Equal(t, 4500.0, mass)
}

func TestFilterSpecies_SubsetPreservesOrder(t *testing.T) {
	view := fixtureView()
	got := FilterSpecies(view, []string{"Chinstrap", "Adelie"})

	assert.Equal(t, []string{"Adelie", "Adelie", "Adelie", "Chinstrap", "Chinstrap", "Adelie"}, speciesOf(got))
	// Chinstrap at rows 4 and 6 keep their relative order.
	first, _ := got.Measure(3, "body_mass_g")
	second, _ := got.Measure(4, "body_mass_g")
	assert.Equal(t, 3500.0, first)
	assert.Equal(t, 3900.0, second)
}

func TestFilterSpecies_LengthMatchesMembership(t *testing.T) {
	view := fixtureView()
	for _, set := range [][]string{{"Adelie"}, {"Gentoo"}, {"Chinstrap"}, {"Adelie", "Gentoo"}} {
		want := 0
		allowed := toSet(set)
		for i := 0; i < view.Len(); i++ {
			if allowed[view.Dimension(i, SpeciesKey)] {
				want++
			}
		}
		assert.Equal(t, want, FilterSpecies(view, set).Len(), "set %v", set)
	}
}

func TestFilterSpecies_FullSetIsIdentity(t *testing.T) {
	view := fixtureView()
	got := FilterSpecies(view, allSpecies)
	require.Equal(t, view.Len(), got.Len())
	assert.Equal(t, speciesOf(view), speciesOf(got))
	for i := 0; i < view.Len(); i++ {
		want, wantOK := view.Measure(i, "body_mass_g")
		have, haveOK := got.Measure(i, "body_mass_g")
		assert.Equal(t, wantOK, haveOK)
		assert.Equal(t, want, have)
	}
}

func TestFilterSpecies_EmptySetIsEmpty(t *testing.T) {
	view := fixtureView()
	assert.Equal(t, 0, FilterSpecies(view, []string{}).Len())
	assert.Equal(t, 0, FilterSpecies(view, nil).Len())
}

func TestFilterSpecies_Idempotent(t *testing.T) {
	view := fixtureView()
	set := []string{"Gentoo", "Chinstrap"}
	once := FilterSpecies(view, set)
	twice := FilterSpecies(once, set)
	assert.Equal(t, speciesOf(once), speciesOf(twice))
}

func TestFilterSpecies_CaseSensitive(t *testing.T) {
	assert.Equal(t, 0, FilterSpecies(fixtureView(), []string{"adelie", "GENTOO"}).Len())
}

// ============================================================================
// GENERIC FILTERS
// ============================================================================

func TestApplyFilters_NilMapIsNoRestriction(t *testing.T) {
	view := fixtureView()
	assert.Same(t, view, ApplyFilters(view, Filters{}))
}

func TestApplyFilters_AndAcrossDimensions(t *testing.T) {
	got := ApplyFilters(fixtureView(), Filters{Dimensions: map[string][]string{
		"species": {"Adelie", "Chinstrap"},
		"island":  {"Dream"},
	}})
	assert.Equal(t, []string{"Chinstrap", "Chinstrap", "Adelie"}, speciesOf(got))
}

func TestFilters_HasFilter(t *testing.T) {
	f := Filters{Dimensions: map[string][]string{"species": {}}}
	assert.True(t, f.HasFilter("species"))
	assert.False(t, f.HasFilter("island"))
	assert.False(t, Filters{}.HasFilter("species"))
	assert.True(t, Filters{}.IsEmpty())
}
