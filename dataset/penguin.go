package dataset

import (
	"encoding/json"
	"strconv"
)

// Species is one of the three penguin species in the study.
type Species string

const (
	Adelie    Species = "Adelie"
	Gentoo    Species = "Gentoo"
	Chinstrap Species = "Chinstrap"
)

// AllSpecies lists every species in dataset order.
var AllSpecies = []Species{Adelie, Gentoo, Chinstrap}

// SpeciesNames returns AllSpecies as plain strings.
func SpeciesNames() []string {
	names := make([]string, len(AllSpecies))
	for i, s := range AllSpecies {
		names[i] = string(s)
	}
	return names
}

// Sex is the recorded sex of a penguin. The empty value means not recorded.
type Sex string

const (
	Male       Sex = "MALE"
	Female     Sex = "FEMALE"
	SexUnknown Sex = ""
)

// NullFloat is a measurement that may be missing.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present measurement.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (n NullFloat) Get() (float64, bool) { return n.Value, n.Valid }

func (n NullFloat) String() string {
	if !n.Valid {
		return "NA"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON encodes a missing value as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Penguin is one row of the dataset.
type Penguin struct {
	Species         Species   `json:"species"`
	Island          string    `json:"island"`
	BillLengthMM    NullFloat `json:"bill_length_mm"`
	BillDepthMM     NullFloat `json:"bill_depth_mm"`
	FlipperLengthMM NullFloat `json:"flipper_length_mm"`
	BodyMassG       NullFloat `json:"body_mass_g"`
	Sex             Sex       `json:"sex"`
}
