// Package reactive holds the dashboard's selection state and tells views
// when the inputs they read have changed.
package reactive

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spektr-org/penguinlens/schema"
)

// ============================================================================
// SELECTION — Immutable snapshot of the four user inputs
// ============================================================================

// Seaborn bin-count slider bounds.
const (
	MinSeabornBins = 1
	MaxSeabornBins = 20
)

// Sentinel errors for inputs no widget can produce.
var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownSpecies   = errors.New("unknown species")
	ErrInvalidBins      = errors.New("invalid bin count")
)

// Selection is the current value of every input. Views receive it by value
// and never see a half-applied update.
type Selection struct {
	Attribute   string   `json:"selected_attribute"`
	PlotlyBins  int      `json:"plotly_bin_count"`
	SeabornBins int      `json:"seaborn_bin_count"`
	Species     []string `json:"selected_species_list"`
}

// DefaultSelection mirrors the widgets' initial values.
func DefaultSelection() Selection {
	return Selection{
		Attribute:   schema.BillLengthMM,
		PlotlyBins:  20,
		SeabornBins: 10,
		Species:     SpeciesChoices(),
	}
}

// AttributeChoices lists the selectable measurement columns.
func AttributeChoices() []string {
	return schema.Penguins().MeasureKeys()
}

// SpeciesChoices lists the checkbox options in display order.
func SpeciesChoices() []string {
	d, _ := schema.Penguins().Dimension(schema.Species)
	return slices.Clone(d.Values)
}

// Validate checks a selection against the widget domains. PlotlyBins is
// free: the numeric input accepts any integer.
func (s Selection) Validate() error {
	if !slices.Contains(AttributeChoices(), s.Attribute) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, s.Attribute)
	}
	if s.SeabornBins < MinSeabornBins || s.SeabornBins > MaxSeabornBins {
		return fmt.Errorf("%w: seaborn bins %d outside [%d, %d]", ErrInvalidBins, s.SeabornBins, MinSeabornBins, MaxSeabornBins)
	}
	choices := SpeciesChoices()
	for _, sp := range s.Species {
		if !slices.Contains(choices, sp) {
			return fmt.Errorf("%w: %q", ErrUnknownSpecies, sp)
		}
	}
	return nil
}

// Clone returns a copy that shares no memory with s.
func (s Selection) Clone() Selection {
	s.Species = slices.Clone(s.Species)
	if s.Species == nil {
		s.Species = []string{}
	}
	return s
}

// HasSpecies reports whether a species is checked.
func (s Selection) HasSpecies(name string) bool {
	return slices.Contains(s.Species, name)
}

// NormalizeSpecies drops blanks and duplicates and orders the list the way
// the checkboxes are ordered, so equal sets compare equal.
func NormalizeSpecies(species []string) []string {
	out := []string{}
	for _, choice := range SpeciesChoices() {
		if slices.Contains(species, choice) {
			out = append(out, choice)
		}
	}
	for _, sp := range species {
		if sp != "" && !slices.Contains(out, sp) {
			out = append(out, sp)
		}
	}
	return out
}

// ============================================================================
// FIELDS — bitmask of selection inputs
// ============================================================================

// Field identifies one input of the selection.
type Field uint8

const (
	FieldAttribute Field = 1 << iota
	FieldPlotlyBins
	FieldSeabornBins
	FieldSpecies

	AllFields = FieldAttribute | FieldPlotlyBins | FieldSeabornBins | FieldSpecies
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldAttribute, "selected_attribute"},
	{FieldPlotlyBins, "plotly_bin_count"},
	{FieldSeabornBins, "seaborn_bin_count"},
	{FieldSpecies, "selected_species_list"},
}

// Intersects reports whether f and other share any field.
func (f Field) Intersects(other Field) bool { return f&other != 0 }

// Names returns the form names of the fields in f.
func (f Field) Names() []string {
	names := []string{}
	for _, fn := range fieldNames {
		if f&fn.field != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// MarshalJSON encodes the field set as its list of names.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// diff returns the fields whose values differ between a and b.
func diff(a, b Selection) Field {
	var changed Field
	if a.Attribute != b.Attribute {
		changed |= FieldAttribute
	}
	if a.PlotlyBins != b.PlotlyBins {
		changed |= FieldPlotlyBins
	}
	if a.SeabornBins != b.SeabornBins {
		changed |= FieldSeabornBins
	}
	if !slices.Equal(a.Species, b.Species) {
		changed |= FieldSpecies
	}
	return changed
}
