package reactive

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm_FullSubmission(t *testing.T) {
	p, err := ParseForm(url.Values{
		FormAttribute:   {"flipper_length_mm"},
		FormPlotlyBins:  {"35"},
		FormSeabornBins: {"7"},
		FormSpecies:     {"", "Gentoo", "Adelie"},
	})
	require.NoError(t, err)

	assert.Equal(t, AllFields, p.Fields())
	assert.Equal(t, "flipper_length_mm", *p.Attribute)
	assert.Equal(t, 35, *p.PlotlyBins)
	assert.Equal(t, 7, *p.SeabornBins)
	assert.Equal(t, []string{"Adelie", "Gentoo"}, *p.Species)
}

func TestParseForm_BinCountAsymmetry(t *testing.T) {
	tests := []struct {
		raw         string
		wantPlotly  int
		wantSeaborn int
	}{
		{"0", 0, 1},
		{"-4", -4, 1},
		{"20", 20, 20},
		{"500", 500, 20},
		{" 12 ", 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := ParseForm(url.Values{FormPlotlyBins: {tt.raw}, FormSeabornBins: {tt.raw}})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlotly, *p.PlotlyBins)
			assert.Equal(t, tt.wantSeaborn, *p.SeabornBins)
		})
	}
}

func TestParseForm_EmptySpeciesGroup(t *testing.T) {
	p, err := ParseForm(url.Values{FormSpecies: {""}})
	require.NoError(t, err)
	require.NotNil(t, p.Species)
	assert.Empty(t, *p.Species)
	assert.Equal(t, FieldSpecies, p.Fields())
}

func TestParseForm_AbsentFieldsUntouched(t *testing.T) {
	p, err := ParseForm(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Field(0), p.Fields())
}

func TestParseForm_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   error
	}{
		{"unknown attribute", url.Values{FormAttribute: {"island"}}, ErrUnknownAttribute},
		{"non integer plotly", url.Values{FormPlotlyBins: {"2.5"}}, ErrInvalidBins},
		{"non integer seaborn", url.Values{FormSeabornBins: {"ten"}}, ErrInvalidBins},
		{"unknown species", url.Values{FormSpecies: {"Adelie", "Emperor"}}, ErrUnknownSpecies},
		{"species case", url.Values{FormSpecies: {"gentoo"}}, ErrUnknownSpecies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForm(tt.values)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	p, err := DecodeJSON(strings.NewReader(`{"seaborn_bin_count": 99, "plotly_bin_count": 99, "selected_species_list": []}`))
	require.NoError(t, err)
	assert.Equal(t, 20, *p.SeabornBins)
	assert.Equal(t, 99, *p.PlotlyBins)
	assert.Empty(t, *p.Species)
	assert.Nil(t, p.Attribute)

	_, err = DecodeJSON(strings.NewReader(`{"selected_attribute": "sex"}`))
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	_, err = DecodeJSON(strings.NewReader(`{"selected_species_list": ["Emperor"]}`))
	assert.ErrorIs(t, err, ErrUnknownSpecies)

	_, err = DecodeJSON(strings.NewReader(`{"bins": 3}`))
	assert.Error(t, err)
}

func TestSelection_Defaults(t *testing.T) {
	sel := DefaultSelection()
	assert.NoError(t, sel.Validate())
	assert.Equal(t, "bill_length_mm", sel.Attribute)
	assert.Equal(t, 20, sel.PlotlyBins)
	assert.Equal(t, 10, sel.SeabornBins)
	assert.Equal(t, []string{"Adelie", "Gentoo", "Chinstrap"}, sel.Species)
	assert.True(t, sel.HasSpecies("Gentoo"))
	assert.Equal(t, []string{"bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g"}, AttributeChoices())
}

func TestSelection_ValuesRoundTrip(t *testing.T) {
	for _, species := range [][]string{{"Gentoo"}, {}, SpeciesChoices()} {
		sel := DefaultSelection()
		sel.Attribute = "body_mass_g"
		sel.PlotlyBins = -3
		sel.SeabornBins = 5
		sel.Species = species

		p, err := ParseForm(sel.Values())
		require.NoError(t, err)
		back, err := p.Preview(DefaultSelection())
		require.NoError(t, err)
		assert.Equal(t, sel.Attribute, back.Attribute)
		assert.Equal(t, -3, back.PlotlyBins)
		assert.Equal(t, 5, back.SeabornBins)
		assert.ElementsMatch(t, species, back.Species)
	}
}

func TestPatch_PreviewRejectsInvalid(t *testing.T) {
	attr := "island"
	_, err := Patch{Attribute: &attr}.Preview(DefaultSelection())
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}
