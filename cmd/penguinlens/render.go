package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/penguinlens/dashboard"
	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/reactive"
	"github.com/spektr-org/penguinlens/render"
)

// Output formats.
const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatPNG  = "png"
)

// selectionFlags mirror the dashboard inputs.
type selectionFlags struct {
	attribute   string
	plotlyBins  int
	seabornBins int
	species     []string
}

func addSelectionFlags(fs *pflag.FlagSet, f *selectionFlags) {
	fs.StringVar(&f.attribute, "attribute", "", "measurement column ("+strings.Join(reactive.AttributeChoices(), ", ")+")")
	fs.IntVar(&f.plotlyBins, "plotly-bins", 0, "Plotly histogram bin count")
	fs.IntVar(&f.seabornBins, "seaborn-bins", 0, "Seaborn histogram bin count (1-20)")
	fs.StringSliceVar(&f.species, "species", nil, "species to include; empty for none")
}

// values encodes only the flags the user set, in the form the server reads.
func (f *selectionFlags) values(fs *pflag.FlagSet) url.Values {
	v := url.Values{}
	if fs.Changed("attribute") {
		v.Set(reactive.FormAttribute, f.attribute)
	}
	if fs.Changed("plotly-bins") {
		v.Set(reactive.FormPlotlyBins, strconv.Itoa(f.plotlyBins))
	}
	if fs.Changed("seaborn-bins") {
		v.Set(reactive.FormSeabornBins, strconv.Itoa(f.seabornBins))
	}
	if fs.Changed("species") {
		v[reactive.FormSpecies] = append([]string{""}, f.species...)
	}
	return v
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		sel     selectionFlags
		format  string
		outFile string
		width   int
		height  int
	)
	cmd := &cobra.Command{
		Use:   "render <view>",
		Short: "Render one dashboard view",
		Long: "Render one dashboard view as JSON, CSV or PNG.\n\nViews: " +
			strings.Join(dashboard.IDs(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := dashboard.Lookup(args[0])
			if err != nil {
				return exitError(ExitInvalidArgs, "%v (views: %s)", err, strings.Join(dashboard.IDs(), ", "))
			}
			switch format {
			case formatJSON, formatCSV:
			case formatPNG:
				if !view.Image {
					return exitError(ExitInvalidArgs, "view %s has no png rendering", view.ID)
				}
			default:
				return exitError(ExitInvalidArgs, "unknown format %q (json, csv, png)", format)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			patch, err := reactive.ParseForm(sel.values(cmd.Flags()))
			if err != nil {
				return exitError(ExitInvalidArgs, "%v", err)
			}
			selection, err := patch.Preview(cfg.Selection())
			if err != nil {
				return exitError(ExitInvalidArgs, "%v", err)
			}
			ds, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			dash := dashboard.New(ds, dashboard.WithMaxBins(cfg.MaxHistogramBins))

			out := cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile) //nolint:gosec // user-provided output path
				if err != nil {
					return exitError(ExitRenderFailure, "create %s: %v", outFile, err)
				}
				defer f.Close() //nolint:errcheck // best-effort close
				out = f
			}

			if err := renderView(out, dash, view.ID, selection, format, render.WithSize(width, height)); err != nil {
				return exitError(ExitRenderFailure, "render %s: %v", view.ID, err)
			}
			if outFile != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s written to %s\n", strings.ToUpper(format), outFile)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	addSelectionFlags(fs, &sel)
	fs.StringVarP(&format, "format", "f", formatJSON, "output format: json, csv, png")
	fs.StringVarP(&outFile, "out", "o", "", "write output to file instead of stdout")
	fs.IntVar(&width, "width", render.DefaultWidth, "png width in pixels")
	fs.IntVar(&height, "height", render.DefaultHeight, "png height in pixels")
	return cmd
}

func renderView(w io.Writer, dash *dashboard.Dashboard, id string, sel reactive.Selection, format string, opts ...render.Option) error {
	if format == formatPNG {
		return dash.RenderPNG(w, id, sel, opts...)
	}
	result, err := dash.Render(id, sel)
	if err != nil {
		return err
	}
	if format == formatCSV {
		return writeCSV(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

var errNoData = errors.New("result has no chart or table")

func writeCSV(w io.Writer, result *engine.Result) error {
	cw := csv.NewWriter(w)
	var err error
	switch {
	case result.ChartConfig != nil:
		err = writeChartCSV(cw, result.ChartConfig)
	case result.TableData != nil:
		err = writeTableCSV(cw, result.TableData)
	default:
		err = errNoData
	}
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) error {
	switch chart.ChartType {
	case engine.ChartHistogram:
		// One row per bin, one column per species.
		headers := []string{chart.XAxis}
		for _, s := range chart.Series {
			headers = append(headers, s.Name)
		}
		rows := [][]string{headers}
		for i, b := range chart.Bins {
			row := []string{engine.BinLabel(b)}
			for _, s := range chart.Series {
				if i < len(s.Data) {
					row = append(row, fmtNum(s.Data[i].Value))
				} else {
					row = append(row, "")
				}
			}
			rows = append(rows, row)
		}
		return cw.WriteAll(rows)

	case engine.ChartScatter:
		rows := [][]string{{"species", chart.XAxis, chart.YAxis}}
		for _, s := range chart.Series {
			for _, p := range s.Data {
				rows = append(rows, []string{s.Name, fmtNum(p.X), fmtNum(p.Value)})
			}
		}
		return cw.WriteAll(rows)

	case engine.ChartViolin:
		rows := [][]string{{"species", "n", "min", "q1", "median", "q3", "max", "mean"}}
		for _, s := range chart.Series {
			if s.Violin == nil {
				continue
			}
			b := s.Violin.Box
			rows = append(rows, []string{
				s.Name, strconv.Itoa(b.N),
				fmtNum(b.Min), fmtNum(b.Q1), fmtNum(b.Median), fmtNum(b.Q3), fmtNum(b.Max), fmtNum(b.Mean),
			})
		}
		return cw.WriteAll(rows)
	}
	return fmt.Errorf("chart type %q: %w", chart.ChartType, errNoData)
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) error {
	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Key
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	return cw.WriteAll(table.Rows)
}

// fmtNum prints whole numbers without decimals, fractions with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
