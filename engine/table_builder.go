package engine

import "fmt"

// ============================================================================
// TABLE BUILDER — Produces TableData from a RecordView
// ============================================================================
// One row per record, columns in source order. The data table and the data
// grid differ only in presentation style; both are row-selectable.
// ============================================================================

// NullCell is how a missing observation is printed.
const NullCell = "NA"

// BuildTable produces the data table artifact.
func BuildTable(view RecordView, opts ...Option) *TableData {
	cfg := applyOptions(append([]Option{WithTitle("Penguins Data Table")}, opts...))
	return buildRowTable(view, cfg.Title, TableStyleTable)
}

// BuildGrid produces the data grid artifact.
func BuildGrid(view RecordView, opts ...Option) *TableData {
	cfg := applyOptions(append([]Option{WithTitle("Penguins Data Grid")}, opts...))
	return buildRowTable(view, cfg.Title, TableStyleGrid)
}

func buildRowTable(view RecordView, title, style string) *TableData {
	table := &TableData{
		Title:         title,
		Style:         style,
		SelectionMode: "row",
		Filters:       false,
		Columns:       []Column{},
		Rows:          [][]string{},
	}

	keys := view.Columns()
	measures := make(map[string]bool, len(view.MeasureKeys()))
	for _, k := range view.MeasureKeys() {
		measures[k] = true
	}

	for _, key := range keys {
		col := Column{Key: key, Label: key, Type: "text", Align: "left"}
		if measures[key] {
			col.Type = "number"
			col.Align = "right"
		}
		table.Columns = append(table.Columns, col)
	}

	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			row = append(row, formatCell(view, i, key, measures[key]))
		}
		table.Rows = append(table.Rows, row)
	}

	// Summary row: missing-value counts under each measure column
	table.Summary = &Summary{
		Label:  fmt.Sprintf("%d rows", view.Len()),
		Values: make(map[string]string, len(measures)),
	}
	for key := range measures {
		table.Summary.Values[key] = fmt.Sprintf("%d missing", CountNull(view, key))
	}
	return table
}

func formatCell(view RecordView, i int, key string, isMeasure bool) string {
	if isMeasure {
		v, ok := view.Measure(i, key)
		if !ok {
			return NullCell
		}
		return FormatNumber(v)
	}
	if s := view.Dimension(i, key); s != "" {
		return s
	}
	return NullCell
}
