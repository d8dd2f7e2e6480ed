// Package dashboard maps the selection state onto the six dashboard views
// and wires each view to the inputs it depends on.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/reactive"
)

// View ids.
const (
	ViewTable            = "data-table"
	ViewGrid             = "data-grid"
	ViewPlotlyHistogram  = "plotly-histogram"
	ViewSeabornHistogram = "seaborn-histogram"
	ViewScatter          = "scatter"
	ViewViolin           = "violin"
)

var (
	// ErrUnknownView is returned for a view id that is not registered.
	ErrUnknownView = errors.New("unknown view")
	// ErrNoImage is returned when a view has no server-side image.
	ErrNoImage = errors.New("view has no image rendering")
)

// View describes one render target.
type View struct {
	ID       string
	Header   string         // card header, empty for cards without one
	Kind     string         // engine request kind
	Title    string         // chart title override
	Deps     reactive.Field // inputs the view reads
	Filtered bool           // reads the species filter
	Image    bool           // rendered to PNG on the server
}

// seabornPalette is seaborn's "deep" palette in species order.
var seabornPalette = map[string]string{
	"Adelie":    "#4C72B0",
	"Gentoo":    "#DD8452",
	"Chinstrap": "#55A868",
}

// views is the page layout, in display order.
var views = []View{
	{ID: ViewTable, Header: "Penguins Data Table", Kind: engine.KindTable},
	{ID: ViewGrid, Header: "Penguins Data Grid", Kind: engine.KindGrid},
	{
		ID:       ViewPlotlyHistogram,
		Kind:     engine.KindHistogram,
		Title:    "Plotly Histogram",
		Deps:     reactive.FieldAttribute | reactive.FieldPlotlyBins | reactive.FieldSpecies,
		Filtered: true,
	},
	{
		ID:       ViewSeabornHistogram,
		Kind:     engine.KindHistogram,
		Title:    "Seaborn Histogram",
		Deps:     reactive.FieldAttribute | reactive.FieldSeabornBins | reactive.FieldSpecies,
		Filtered: true,
		Image:    true,
	},
	{
		ID:       ViewScatter,
		Header:   "Plotly Scatterplot: Species",
		Kind:     engine.KindScatter,
		Deps:     reactive.FieldSpecies,
		Filtered: true,
		Image:    true,
	},
	{
		ID:     ViewViolin,
		Header: "Plotly Violinplot: Species",
		Kind:   engine.KindViolin,
		Deps:   reactive.FieldAttribute,
	},
}

// Views returns every view in display order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// Lookup finds a view by id.
func Lookup(id string) (View, error) {
	for _, v := range views {
		if v.ID == id {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, id)
}

// IDs returns the view ids in display order.
func IDs() []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

// request turns a selection into the engine request for this view.
func (v View) request(sel reactive.Selection) engine.Request {
	req := engine.Request{
		View:     v.ID,
		Kind:     v.Kind,
		Title:    v.Title,
		Filtered: v.Filtered,
	}
	if v.Deps.Intersects(reactive.FieldAttribute) {
		req.Attribute = sel.Attribute
	}
	switch {
	case v.Deps.Intersects(reactive.FieldPlotlyBins):
		req.Bins = sel.PlotlyBins
	case v.Deps.Intersects(reactive.FieldSeabornBins):
		req.Bins = sel.SeabornBins
	}
	if v.Filtered {
		req.Species = sel.Species
	}
	return req
}

// options returns the builder options specific to this view.
func (v View) options(sel reactive.Selection) []engine.Option {
	switch v.ID {
	case ViewPlotlyHistogram:
		return []engine.Option{
			engine.WithBinMode(engine.BinNice),
			engine.WithBarBorder("black", 2),
		}
	case ViewSeabornHistogram:
		return []engine.Option{
			engine.WithBinMode(engine.BinExact),
			engine.WithAxisLabels(sel.Attribute, "Count"),
			engine.WithPalette(seabornPalette),
		}
	}
	return nil
}
