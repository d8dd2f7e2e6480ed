// Package dataset holds the penguin table: loaded once at startup, read-only
// afterwards and shared by every view without locking.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/schema"
)

//go:embed penguins.csv
var embeddedCSV []byte

// Source names where the CSV comes from and how to open it.
type Source struct {
	Name string
	open func() (io.ReadCloser, error)
}

// Embedded is the CSV compiled into the binary.
func Embedded() Source {
	return Bytes("embedded:penguins.csv", embeddedCSV)
}

// File reads the CSV from disk.
func File(path string) Source {
	return Source{
		Name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Bytes serves an in-memory CSV.
func Bytes(name string, data []byte) Source {
	return Source{
		Name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Dataset is the ordered, immutable penguin table.
type Dataset struct {
	name     string
	penguins []Penguin
	view     engine.RecordView
}

// Load reads and validates a source. Callers treat a failure as fatal.
func Load(src Source) (*Dataset, error) {
	if src.open == nil {
		return nil, fmt.Errorf("load dataset: source %q has no reader", src.Name)
	}
	rc, err := src.open()
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", src.Name, err)
	}
	defer rc.Close()

	penguins, err := ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", src.Name, err)
	}

	ds := New(src.Name, penguins)
	slog.Info("dataset loaded", "source", src.Name, "rows", ds.Len())
	return ds, nil
}

// New wraps already-parsed rows.
func New(name string, penguins []Penguin) *Dataset {
	return &Dataset{
		name:     name,
		penguins: penguins,
		view:     penguinAdapter.Bind(penguins),
	}
}

func (d *Dataset) Name() string { return d.name }
func (d *Dataset) Len() int     { return len(d.penguins) }

// At returns row i by value.
func (d *Dataset) At(i int) Penguin { return d.penguins[i] }

// Records returns a copy of every row.
func (d *Dataset) Records() []Penguin {
	out := make([]Penguin, len(d.penguins))
	copy(out, d.penguins)
	return out
}

// View exposes the rows to the engine without copying.
func (d *Dataset) View() engine.RecordView { return d.view }

// penguinAdapter registers columns in file order.
var penguinAdapter = engine.NewDomainAdapter[Penguin]().
	Dimension(schema.Species, func(p Penguin) string { return string(p.Species) }).
	Dimension(schema.Island, func(p Penguin) string { return p.Island }).
	Measure(schema.BillLengthMM, func(p Penguin) (float64, bool) { return p.BillLengthMM.Get() }).
	Measure(schema.BillDepthMM, func(p Penguin) (float64, bool) { return p.BillDepthMM.Get() }).
	Measure(schema.FlipperLengthMM, func(p Penguin) (float64, bool) { return p.FlipperLengthMM.Get() }).
	Measure(schema.BodyMassG, func(p Penguin) (float64, bool) { return p.BodyMassG.Get() }).
	Dimension(schema.Sex, func(p Penguin) string { return string(p.Sex) })
