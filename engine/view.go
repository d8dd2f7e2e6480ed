package engine

import "sort"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns the dataset. It reads through this interface.
//
// Implementations:
//   SliceView      — wraps []Record (tests, ad-hoc tables)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//
// Measures are nullable: a missing observation reports ok=false and is
// skipped by every builder rather than being read as zero.
// ============================================================================

// RecordView provides indexed access to a dataset.
// Builders call Dimension/Measure in tight loops; keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) (float64, bool)
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
	Columns() []string       // all keys in source column order
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
// Key order is dimensions then measures, each sorted by name, since
// map-backed records carry no column order of their own.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
	sort.Strings(v.dimKeys)
	sort.Strings(v.mesKeys)
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.records) {
		return 0, false
	}
	val, ok := v.records[i].Measures[key]
	return val, ok
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

func (v *SliceView) Columns() []string {
	cols := make([]string, 0, len(v.dimKeys)+len(v.mesKeys))
	cols = append(cols, v.dimKeys...)
	return append(cols, v.mesKeys...)
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent, no data copy. Indices are ascending,
// so a SubView always preserves the parent's row order.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }
func (v *SubView) Columns() []string       { return v.parent.Columns() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[dataset.Penguin]().
//	    Dimension("species", func(p dataset.Penguin) string { return string(p.Species) }).
//	    Measure("body_mass_g", func(p dataset.Penguin) (float64, bool) { return p.BodyMassG.Get() })
//
//	view := adapter.Bind(penguins)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	colOrder []string
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) (float64, bool)
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) (float64, bool)),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
		a.colOrder = append(a.colOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a nullable measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) (float64, bool)) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
		a.colOrder = append(a.colOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. It holds the slice, no copy.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		colKeys:  a.colOrder,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) (float64, bool)
	colKeys  []string
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0, false
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
func (v *DomainView[T]) Columns() []string       { return v.colKeys }

// IsMeasure reports whether key is one of the view's measure keys.
func IsMeasure(view RecordView, key string) bool {
	for _, k := range view.MeasureKeys() {
		if k == key {
			return true
		}
	}
	return false
}
