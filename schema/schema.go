package schema

// ============================================================================
// SCHEMA — Describes the shape of the penguin dataset
// ============================================================================
// The dataset loader checks incoming CSV against this description before it
// converts any row. Column keys and enumerated spellings are part of the
// external contract and are compared byte-for-byte.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Columns lists every key in file order.
	Columns []string `json:"columns"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Values      []string `json:"values,omitempty"` // allowed spellings; empty means free text
	Nullable    bool     `json:"nullable,omitempty"`
	Filterable  bool     `json:"filterable"`
}

// MeasureMeta describes a numeric field.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Unit        string `json:"unit,omitempty"` // "mm", "g"
	Nullable    bool   `json:"nullable"`
}

// Column keys of the penguin dataset.
const (
	Species         = "species"
	Island          = "island"
	BillLengthMM    = "bill_length_mm"
	BillDepthMM     = "bill_depth_mm"
	FlipperLengthMM = "flipper_length_mm"
	BodyMassG       = "body_mass_g"
	Sex             = "sex"
)

// Penguins returns the schema of the Palmer penguins table.
func Penguins() Config {
	return Config{
		Name:        "penguins",
		Description: "Palmer Archipelago penguin morphology measurements",
		Dimensions: []DimensionMeta{
			{Key: Species, DisplayName: "Species", Values: []string{"Adelie", "Gentoo", "Chinstrap"}, Filterable: true},
			{Key: Island, DisplayName: "Island", Nullable: true},
			{Key: Sex, DisplayName: "Sex", Values: []string{"MALE", "FEMALE"}, Nullable: true},
		},
		Measures: []MeasureMeta{
			{Key: BillLengthMM, DisplayName: "Bill Length", Unit: "mm", Nullable: true},
			{Key: BillDepthMM, DisplayName: "Bill Depth", Unit: "mm", Nullable: true},
			{Key: FlipperLengthMM, DisplayName: "Flipper Length", Unit: "mm", Nullable: true},
			{Key: BodyMassG, DisplayName: "Body Mass", Unit: "g", Nullable: true},
		},
		Columns: []string{Species, Island, BillLengthMM, BillDepthMM, FlipperLengthMM, BodyMassG, Sex},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Dimension looks up a dimension by key.
func (c Config) Dimension(key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// Label renders a measure as "Display Name (unit)", or the key itself for
// anything that is not a measure.
func (c Config) Label(key string) string {
	m, ok := c.Measure(key)
	if !ok {
		return key
	}
	if m.Unit == "" {
		return m.DisplayName
	}
	return m.DisplayName + " (" + m.Unit + ")"
}
