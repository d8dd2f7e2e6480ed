package reactive

import (
	"fmt"
	"log/slog"
	"sync"
)

// ============================================================================
// STORE — Mutex-guarded selection with explicit subscriptions
// ============================================================================
// Each subscriber declares the fields it reads. Apply computes the changed
// fields and calls only the subscribers whose declaration intersects them,
// in registration order, after the lock is released.
// ============================================================================

// Listener receives the snapshot produced by an update.
type Listener func(Selection)

// Patch is a partial update. Nil fields are left unchanged; a non-nil
// Species replaces the whole set, even with an empty list.
type Patch struct {
	Attribute   *string   `json:"selected_attribute,omitempty"`
	PlotlyBins  *int      `json:"plotly_bin_count,omitempty"`
	SeabornBins *int      `json:"seaborn_bin_count,omitempty"`
	Species     *[]string `json:"selected_species_list,omitempty"`
}

// Fields returns which inputs the patch touches.
func (p Patch) Fields() Field {
	var f Field
	if p.Attribute != nil {
		f |= FieldAttribute
	}
	if p.PlotlyBins != nil {
		f |= FieldPlotlyBins
	}
	if p.SeabornBins != nil {
		f |= FieldSeabornBins
	}
	if p.Species != nil {
		f |= FieldSpecies
	}
	return f
}

// applyTo returns s with the patch applied.
func (p Patch) applyTo(s Selection) Selection {
	next := s.Clone()
	if p.Attribute != nil {
		next.Attribute = *p.Attribute
	}
	if p.PlotlyBins != nil {
		next.PlotlyBins = *p.PlotlyBins
	}
	if p.SeabornBins != nil {
		next.SeabornBins = *p.SeabornBins
	}
	if p.Species != nil {
		next.Species = NormalizeSpecies(*p.Species)
	}
	return next
}

// Preview returns s with the patch applied and validated. No store is
// touched.
func (p Patch) Preview(s Selection) (Selection, error) {
	next := p.applyTo(s)
	if err := next.Validate(); err != nil {
		return Selection{}, err
	}
	return next, nil
}

// Change reports the outcome of one Apply.
type Change struct {
	Selection Selection `json:"selection"`
	Changed   Field     `json:"changed"`
	Notified  []string  `json:"refresh"`
}

type subscription struct {
	id     int
	name   string
	fields Field
	fn     Listener
}

// Store owns the current selection.
type Store struct {
	mu     sync.Mutex
	sel    Selection
	subs   []subscription
	nextID int
}

// NewStore validates and installs the initial selection.
func NewStore(initial Selection) (*Store, error) {
	initial = initial.Clone()
	initial.Species = NormalizeSpecies(initial.Species)
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial selection: %w", err)
	}
	return &Store{sel: initial}, nil
}

// Snapshot returns a copy of the current selection.
func (s *Store) Snapshot() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clone()
}

// Subscribe registers fn under name for changes to fields. The returned
// function removes the subscription.
func (s *Store) Subscribe(name string, fields Field, fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, name: name, fields: fields, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Dependents lists, in registration order, the subscribers that read any
// of the given fields.
func (s *Store) Dependents(fields Field) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for _, sub := range s.subs {
		if sub.fields.Intersects(fields) {
			names = append(names, sub.name)
		}
	}
	return names
}

// Apply validates and installs a patch. Fields the patch sets to their
// current value do not count as changed and wake nobody.
func (s *Store) Apply(p Patch) (Change, error) {
	s.mu.Lock()
	next := p.applyTo(s.sel)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return Change{}, err
	}
	changed := diff(s.sel, next)
	s.sel = next

	var notify []subscription
	for _, sub := range s.subs {
		if sub.fields.Intersects(changed) {
			notify = append(notify, sub)
		}
	}
	snapshot := next.Clone()
	s.mu.Unlock()

	names := make([]string, 0, len(notify))
	for _, sub := range notify {
		sub.fn(snapshot.Clone())
		names = append(names, sub.name)
	}

	slog.Debug("selection updated", "changed", changed.String(), "notified", names)
	return Change{Selection: snapshot, Changed: changed, Notified: names}, nil
}
