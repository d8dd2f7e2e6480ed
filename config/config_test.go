package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/penguinlens/reactive"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, reactive.DefaultSelection(), cfg.Selection())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, FileName, `
addr: 127.0.0.1:9000
title: Palmer Penguins
read_timeout: 5s
defaults:
  attribute: body_mass_g
  seaborn_bin_count: 4
  species: [Gentoo, Adelie]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "Palmer Penguins", cfg.Title)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 1000, cfg.MaxHistogramBins)
	assert.Equal(t, DefaultGitHubURL, cfg.GitHubURL)

	sel := cfg.Selection()
	assert.Equal(t, "body_mass_g", sel.Attribute)
	assert.Equal(t, 20, sel.PlotlyBins)
	assert.Equal(t, 4, sel.SeabornBins)
	assert.Equal(t, []string{"Adelie", "Gentoo"}, sel.Species)
	require.NoError(t, Validate(cfg))
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "penguinlens.toml", `
addr = ":8080"
max_histogram_bins = 50
write_timeout = "1m"

[defaults]
plotly_bin_count = 7
species = ["Chinstrap"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 50, cfg.MaxHistogramBins)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
	assert.Equal(t, 7, cfg.Defaults.PlotlyBins)
	assert.Equal(t, []string{"Chinstrap"}, cfg.Selection().Species)
	assert.Equal(t, "bill_length_mm", cfg.Defaults.Attribute)
}

func TestLoad_EmptySpeciesListIsKept(t *testing.T) {
	path := writeFile(t, FileName, "defaults:\n  species: []\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Selection().Species)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, FileName, "addr: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeFile(t, "bad.toml", "addr = \n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Addr = ""
	cfg.MaxHistogramBins = 0
	cfg.ReadTimeout = -time.Second
	cfg.Defaults.Attribute = "wingspan"

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "config validation failed")
	assert.Contains(t, msg, "addr")
	assert.Contains(t, msg, "max_histogram_bins")
	assert.Contains(t, msg, "read_timeout")
	assert.Contains(t, msg, "wingspan")
}

func TestValidate_SeabornBinsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Defaults.SeabornBins = 21
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seaborn bins 21")
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Default()))
	assert.Contains(t, buf.String(), "read_timeout: 10s")
	assert.Contains(t, buf.String(), "plotly_bin_count: 20")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, Default(), &back)
}
