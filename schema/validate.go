package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// VALIDATION — Header and cell checks against a Config
// ============================================================================
// Pipeline per file:
//   1. Header → every configured column present, none duplicated
//   2. Cells  → enumerated dimensions use a known spelling,
//               measures parse as finite numbers, nulls only where allowed
// Extra columns are tolerated and ignored by the loader.
// ============================================================================

// Sentinel errors, matched with errors.Is.
var (
	ErrMissingColumn   = errors.New("missing column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrUnknownValue    = errors.New("unknown value")
	ErrNotNumeric      = errors.New("not numeric")
	ErrNullValue       = errors.New("null value")
)

// NullTokens are the cell spellings read as a missing observation.
var NullTokens = []string{"", "NA", "NaN", "<nil>"}

// IsNull reports whether a raw cell is a missing observation.
func IsNull(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, tok := range NullTokens {
		if cell == tok {
			return true
		}
	}
	return false
}

// ValidateHeader checks that every configured column appears exactly once.
// Returns the column index of each configured key.
func ValidateHeader(c Config, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("header: %w: %q", ErrDuplicateColumn, h)
		}
		index[h] = i
	}

	var missing []string
	for _, key := range c.Columns {
		if _, ok := index[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header: %w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

// ValidateValue checks one raw cell of a configured column.
func ValidateValue(c Config, key, cell string) error {
	if d, ok := c.Dimension(key); ok {
		if IsNull(cell) {
			if !d.Nullable {
				return fmt.Errorf("%s: %w", key, ErrNullValue)
			}
			return nil
		}
		if len(d.Values) == 0 {
			return nil
		}
		for _, v := range d.Values {
			if cell == v {
				return nil
			}
		}
		return fmt.Errorf("%s: %w %q (want one of %s)", key, ErrUnknownValue, cell, strings.Join(d.Values, ", "))
	}

	if m, ok := c.Measure(key); ok {
		if IsNull(cell) {
			if !m.Nullable {
				return fmt.Errorf("%s: %w", key, ErrNullValue)
			}
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%s: %w: %q", key, ErrNotNumeric, cell)
		}
		return nil
	}

	return nil
}

// ValidateRow checks every configured cell of one data row. line is the
// 1-based file line used in error messages.
func ValidateRow(c Config, index map[string]int, row []string, line int) error {
	for _, key := range c.Columns {
		i := index[key]
		if i >= len(row) {
			return fmt.Errorf("line %d: %w: %s", line, ErrMissingColumn, key)
		}
		if err := ValidateValue(c, key, row[i]); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return nil
}
