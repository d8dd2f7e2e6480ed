package reactive

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ============================================================================
// INPUT PARSING — Form and JSON bodies to Patch
// ============================================================================
// Rules follow the widgets:
//   selected_attribute     — one of the measurement columns
//   plotly_bin_count       — any integer, never clamped
//   seaborn_bin_count      — integer clamped to [1, 20] like the slider
//   selected_species_list  — repeated field; a blank value marks an
//                            intentionally empty checkbox group
// ============================================================================

// Form field names.
const (
	FormAttribute   = "selected_attribute"
	FormPlotlyBins  = "plotly_bin_count"
	FormSeabornBins = "seaborn_bin_count"
	FormSpecies     = "selected_species_list"
)

// ParseForm turns posted form values into a patch. Absent fields are left
// out of the patch.
func ParseForm(values url.Values) (Patch, error) {
	var p Patch

	if vals, ok := values[FormAttribute]; ok && len(vals) > 0 {
		attr := strings.TrimSpace(vals[0])
		if err := checkAttribute(attr); err != nil {
			return Patch{}, err
		}
		p.Attribute = &attr
	}

	if vals, ok := values[FormPlotlyBins]; ok && len(vals) > 0 {
		n, err := parseBins(FormPlotlyBins, vals[0])
		if err != nil {
			return Patch{}, err
		}
		p.PlotlyBins = &n
	}

	if vals, ok := values[FormSeabornBins]; ok && len(vals) > 0 {
		n, err := parseBins(FormSeabornBins, vals[0])
		if err != nil {
			return Patch{}, err
		}
		n = ClampSeabornBins(n)
		p.SeabornBins = &n
	}

	if vals, ok := values[FormSpecies]; ok {
		species, err := checkSpecies(vals)
		if err != nil {
			return Patch{}, err
		}
		p.Species = &species
	}

	return p, nil
}

// DecodeJSON reads a JSON patch and applies the same rules as ParseForm.
func DecodeJSON(r io.Reader) (Patch, error) {
	var p Patch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Patch{}, fmt.Errorf("decode selection: %w", err)
	}
	if p.Attribute != nil {
		if err := checkAttribute(*p.Attribute); err != nil {
			return Patch{}, err
		}
	}
	if p.SeabornBins != nil {
		n := ClampSeabornBins(*p.SeabornBins)
		p.SeabornBins = &n
	}
	if p.Species != nil {
		species, err := checkSpecies(*p.Species)
		if err != nil {
			return Patch{}, err
		}
		p.Species = &species
	}
	return p, nil
}

// Values encodes a selection as form values that ParseForm reads back. An
// empty species set is sent as a single blank value.
func (s Selection) Values() url.Values {
	v := url.Values{}
	v.Set(FormAttribute, s.Attribute)
	v.Set(FormPlotlyBins, strconv.Itoa(s.PlotlyBins))
	v.Set(FormSeabornBins, strconv.Itoa(s.SeabornBins))
	if len(s.Species) == 0 {
		v.Set(FormSpecies, "")
	}
	for _, sp := range s.Species {
		v.Add(FormSpecies, sp)
	}
	return v
}

// ClampSeabornBins pins n to the slider range.
func ClampSeabornBins(n int) int {
	return min(max(n, MinSeabornBins), MaxSeabornBins)
}

func checkAttribute(attr string) error {
	if !slices.Contains(AttributeChoices(), attr) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	return nil
}

func parseBins(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidBins, field, raw)
	}
	return n, nil
}

func checkSpecies(vals []string) ([]string, error) {
	choices := SpeciesChoices()
	picked := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !slices.Contains(choices, v) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, v)
		}
		picked = append(picked, v)
	}
	return NormalizeSpecies(picked), nil
}
