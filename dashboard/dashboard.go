package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/penguinlens/dataset"
	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/reactive"
	"github.com/spektr-org/penguinlens/render"
)

// ============================================================================
// DASHBOARD — Pure view functions over (dataset, selection snapshot)
// ============================================================================
// Every call filters the dataset again: views share the dataset, never a
// filtered result.
// ============================================================================

// Dashboard renders views of one dataset.
type Dashboard struct {
	data    *dataset.Dataset
	maxBins int
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithMaxBins caps histogram bin counts.
func WithMaxBins(n int) Option {
	return func(d *Dashboard) { d.maxBins = n }
}

// New creates a dashboard over a loaded dataset.
func New(data *dataset.Dataset, opts ...Option) *Dashboard {
	d := &Dashboard{data: data, maxBins: engine.DefaultMaxBins}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dataset returns the underlying table.
func (d *Dashboard) Dataset() *dataset.Dataset { return d.data }

// Render produces the JSON artifact of one view.
func (d *Dashboard) Render(id string, sel reactive.Selection) (*engine.Result, error) {
	v, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return d.render(v, sel)
}

func (d *Dashboard) render(v View, sel reactive.Selection) (*engine.Result, error) {
	opts := append(v.options(sel), engine.WithMaxBins(d.maxBins))
	result, err := engine.Execute(v.request(sel), d.data.View(), opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("view rendered", "view", v.ID, "rows", d.data.Len(), "summary", result.Summary)
	return result, nil
}

// RenderAll renders every view concurrently. Results are keyed by view id.
func (d *Dashboard) RenderAll(ctx context.Context, sel reactive.Selection) (map[string]*engine.Result, error) {
	var mu sync.Mutex
	results := make(map[string]*engine.Result, len(views))

	g, ctx := errgroup.WithContext(ctx)
	for _, v := range views {
		v := v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := d.render(v, sel)
			if err != nil {
				return err
			}
			mu.Lock()
			results[v.ID] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RenderPNG draws a view server-side. Only views with Image set support it.
func (d *Dashboard) RenderPNG(w io.Writer, id string, sel reactive.Selection, opts ...render.Option) error {
	v, err := Lookup(id)
	if err != nil {
		return err
	}
	if !v.Image {
		return fmt.Errorf("%s: %w", id, ErrNoImage)
	}
	result, err := d.render(v, sel)
	if err != nil {
		return err
	}
	switch v.Kind {
	case engine.KindHistogram:
		return render.HistogramPNG(w, result.ChartConfig, opts...)
	case engine.KindScatter:
		return render.ScatterPNG(w, result.ChartConfig, opts...)
	}
	return fmt.Errorf("%s: %w", id, ErrNoImage)
}

// Bind subscribes every view to the inputs it reads. notify runs with the
// view id and the new snapshot whenever one of those inputs changes. Views
// that read nothing are not subscribed. The returned function unsubscribes
// all of them.
func Bind(store *reactive.Store, notify func(view string, sel reactive.Selection)) func() {
	var stops []func()
	for _, v := range views {
		if v.Deps == 0 {
			continue
		}
		id := v.ID
		stops = append(stops, store.Subscribe(id, v.Deps, func(sel reactive.Selection) {
			notify(id, sel)
		}))
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
