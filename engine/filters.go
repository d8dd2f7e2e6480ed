package engine

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent): no data copy, parent order.
// ============================================================================

// SpeciesKey is the dimension the dashboard filters on.
const SpeciesKey = "species"

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions.
//
// A dimension that is present with no values matches nothing: an empty
// checkbox selection hides every row. A nil map places no restriction.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// HasFilter returns true if a dimension is restricted (even to nothing).
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	_, ok := f.Dimensions[dimension]
	return ok
}

// IsEmpty returns true if no dimension is restricted.
func (f Filters) IsEmpty() bool {
	return len(f.Dimensions) == 0
}

// ApplyFilters returns a view of records matching all dimension filters.
// Matching is exact: enumerated spellings are part of the data contract.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool, len(filters.Dimensions))
	for dim, allowed := range filters.Dimensions {
		if len(allowed) == 0 {
			return newSubView(view, []int{})
		}
		sets[dim] = toSet(allowed)
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// FilterSpecies keeps the rows whose species is in the given set, in their
// original order. An empty set yields an empty view.
func FilterSpecies(view RecordView, species []string) RecordView {
	if species == nil {
		species = []string{}
	}
	return ApplyFilters(view, Filters{Dimensions: map[string][]string{SpeciesKey: species}})
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
