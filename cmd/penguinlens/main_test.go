package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/penguinlens/config"
	"github.com/spektr-org/penguinlens/engine"
)

// run executes the CLI with an isolated config path.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--quiet", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.ExitCode()
	}
	return -1
}

// ============================================================================
// ROOT
// ============================================================================

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "render", "describe", "config", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"verbose", "quiet", "no-color", "log-json", "config", "data"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "verbose", root.PersistentFlags().ShorthandLookup("v").Name)
	assert.Equal(t, "quiet", root.PersistentFlags().ShorthandLookup("q").Name)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "penguinlens dev\n", out)
}

func TestReport(t *testing.T) {
	assert.Equal(t, ExitRenderFailure, report(exitError(ExitRenderFailure, "boom")))
	assert.Equal(t, ExitInvalidArgs, report(errors.New("unknown flag")))
}

// ============================================================================
// RENDER
// ============================================================================

func TestRender_JSON(t *testing.T) {
	out, err := run(t, "render", "violin", "--attribute", "body_mass_g")
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "violin", result.View)
	assert.Equal(t, "body_mass_g", result.ChartConfig.YAxis)
	assert.Equal(t, 344, result.ChartConfig.RowCount)
}

func TestRender_SeabornBinsClamped(t *testing.T) {
	out, err := run(t, "render", "seaborn-histogram", "--seaborn-bins", "50")
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.ChartConfig.Bins, 20)
}

func TestRender_EmptySpecies(t *testing.T) {
	out, err := run(t, "render", "scatter", "--species=")
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "0 of 344 penguins", result.Summary)
}

func TestRender_HistogramCSV(t *testing.T) {
	out, err := run(t, "render", "plotly-histogram", "--format", "csv", "--species", "Gentoo", "--attribute", "body_mass_g")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"body_mass_g", "Gentoo"}, rows[0])
	total := 0
	for _, row := range rows[1:] {
		n, err := strconv.Atoi(row[1])
		require.NoError(t, err)
		total += n
	}
	assert.Equal(t, 123, total, "one Gentoo row has no body mass")
}

func TestRender_TableCSV(t *testing.T) {
	out, err := run(t, "render", "data-table", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 345)
	assert.Equal(t, "species", rows[0][0])
	assert.Equal(t, "Adelie", rows[1][0])
}

func TestRender_ViolinCSV(t *testing.T) {
	out, err := run(t, "render", "violin", "--format", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "median", rows[0][4])
}

func TestRender_PNGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	_, err := run(t, "render", "scatter", "--format", "png", "--out", path, "--width", "300", "--height", "200")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown view", []string{"render", "pie"}, ExitInvalidArgs},
		{"png of a table", []string{"render", "data-grid", "--format", "png"}, ExitInvalidArgs},
		{"unknown format", []string{"render", "scatter", "--format", "xml"}, ExitInvalidArgs},
		{"unknown attribute", []string{"render", "violin", "--attribute", "island"}, ExitInvalidArgs},
		{"unknown species", []string{"render", "scatter", "--species", "Emperor"}, ExitInvalidArgs},
		{"missing data file", []string{"--data", "/nonexistent/penguins.csv", "render", "scatter"}, ExitStartupFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

// ============================================================================
// DESCRIBE / CONFIG
// ============================================================================

func TestDescribe(t *testing.T) {
	out, err := run(t, "--no-color", "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded:penguins.csv")
	assert.Contains(t, out, "344 rows")
	assert.Contains(t, out, "Adelie")
	assert.Contains(t, out, "Body Mass (g)")
	assert.Contains(t, out, "missing")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	out, err := run(t, "config", "init", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "config", "init", "--out", path)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))

	_, err = run(t, "config", "init", "--out", path, "--force")
	assert.NoError(t, err)
}

func TestConfigInit_Stdout(t *testing.T) {
	out, err := run(t, "config", "init", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "max_histogram_bins: 1000")
}

func TestConfigShow_DataFlag(t *testing.T) {
	out, err := run(t, "--data", "elsewhere.csv", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "data_path: elsewhere.csv")
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("max_histogram_bins: -1\n"), 0o600))
	g := &globalOptions{configPath: path}
	_, err := g.loadConfig()
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
}

// ============================================================================
// SERVE
// ============================================================================

func TestNewHandler(t *testing.T) {
	h, err := newHandler(config.Default())
	require.NoError(t, err)
	defer h.Close()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, serve(ctx, cfg))
}
