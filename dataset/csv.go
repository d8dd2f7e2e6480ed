package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/spektr-org/penguinlens/schema"
)

// ============================================================================
// CSV READER — Parses penguin CSV into []Penguin via a gota DataFrame
// ============================================================================
// Two passes over the same records:
//   1. Raw string frame → header and cell validation against the schema
//   2. Typed frame      → measures as float series, NA cells as NaN
// Column order in the file does not matter; extra columns are ignored.
// ============================================================================

// ParseCSV reads every row of a penguin CSV.
func ParseCSV(r io.Reader) ([]Penguin, error) {
	sch := schema.Penguins()

	raw := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if raw.Err != nil {
		return nil, fmt.Errorf("read csv: %w", raw.Err)
	}

	records := raw.Records()
	for _, row := range records {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}

	index, err := schema.ValidateHeader(sch, records[0])
	if err != nil {
		return nil, err
	}
	for i, row := range records[1:] {
		if err := schema.ValidateRow(sch, index, row, i+2); err != nil {
			return nil, err
		}
	}

	types := make(map[string]series.Type, len(sch.Columns))
	for _, key := range sch.DimensionKeys() {
		types[key] = series.String
	}
	for _, key := range sch.MeasureKeys() {
		types[key] = series.Float
	}

	df := dataframe.LoadRecords(records,
		dataframe.WithTypes(types),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(schema.NullTokens),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("convert csv: %w", df.Err)
	}

	species := stringColumn(df, schema.Species)
	island := stringColumn(df, schema.Island)
	sex := stringColumn(df, schema.Sex)
	bill := floatColumn(df, schema.BillLengthMM)
	depth := floatColumn(df, schema.BillDepthMM)
	flipper := floatColumn(df, schema.FlipperLengthMM)
	mass := floatColumn(df, schema.BodyMassG)

	penguins := make([]Penguin, df.Nrow())
	for i := range penguins {
		penguins[i] = Penguin{
			Species:         Species(species[i]),
			Island:          island[i],
			BillLengthMM:    bill[i],
			BillDepthMM:     depth[i],
			FlipperLengthMM: flipper[i],
			BodyMassG:       mass[i],
			Sex:             Sex(sex[i]),
		}
	}
	return penguins, nil
}

// stringColumn returns a column's cells with nulls as "".
func stringColumn(df dataframe.DataFrame, key string) []string {
	col := df.Col(key)
	vals := col.Records()
	for i, isNA := range col.IsNaN() {
		if isNA {
			vals[i] = ""
		}
	}
	return vals
}

// floatColumn returns a column's cells with NaN as a missing value.
func floatColumn(df dataframe.DataFrame, key string) []NullFloat {
	col := df.Col(key)
	vals := col.Float()
	nulls := col.IsNaN()
	out := make([]NullFloat, len(vals))
	for i, v := range vals {
		if !nulls[i] {
			out[i] = Float(v)
		}
	}
	return out
}
