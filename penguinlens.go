// Package penguinlens is an interactive dashboard over the Palmer penguins
// dataset.
//
// Usage:
//
//	import "github.com/spektr-org/penguinlens/dashboard"
//
//	ds, _ := dataset.Load(dataset.Embedded())
//	dash := dashboard.New(ds)
//	result, err := dash.Render(dashboard.ViewScatter, reactive.DefaultSelection())
//
// The dataset is loaded once and never modified. Every view is a pure
// function of the dataset and one selection snapshot; the reactive package
// decides which views must redraw when an input changes, and the server
// package pushes those refreshes to the browser.
package penguinlens
