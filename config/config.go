// Package config handles .penguinlens.yaml (or .toml) configuration files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/penguinlens/reactive"
)

// FileName is the config file looked up in the working directory.
const FileName = ".penguinlens.yaml"

// DefaultGitHubURL is the sidebar link target.
const DefaultGitHubURL = "https://github.com/ClaytonSeabaughGH/cintel-02-data"

// Config represents the contents of a config file.
type Config struct {
	Addr             string        `yaml:"addr,omitempty" toml:"addr"`
	DataPath         string        `yaml:"data_path,omitempty" toml:"data_path"`
	Title            string        `yaml:"title,omitempty" toml:"title"`
	GitHubURL        string        `yaml:"github_url,omitempty" toml:"github_url"`
	MaxHistogramBins int           `yaml:"max_histogram_bins,omitempty" toml:"max_histogram_bins"`
	ReadTimeout      time.Duration `yaml:"read_timeout,omitempty" toml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout,omitempty" toml:"write_timeout"`
	Defaults         Defaults      `yaml:"defaults,omitempty" toml:"defaults"`
}

// Defaults is the selection the page starts with.
type Defaults struct {
	Attribute   string   `yaml:"attribute,omitempty" toml:"attribute"`
	PlotlyBins  int      `yaml:"plotly_bin_count,omitempty" toml:"plotly_bin_count"`
	SeabornBins int      `yaml:"seaborn_bin_count,omitempty" toml:"seaborn_bin_count"`
	Species     []string `yaml:"species,omitempty" toml:"species"`
}

// Default returns the built-in configuration.
func Default() *Config {
	sel := reactive.DefaultSelection()
	return &Config{
		Addr:             ":8000",
		Title:            "Penguin Data",
		GitHubURL:        DefaultGitHubURL,
		MaxHistogramBins: 1000,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     30 * time.Second,
		Defaults: Defaults{
			Attribute:   sel.Attribute,
			PlotlyBins:  sel.PlotlyBins,
			SeabornBins: sel.SeabornBins,
			Species:     sel.Species,
		},
	}
}

// Load reads a config file. An empty path means FileName in the working
// directory. A missing file yields Default(); values in the file override
// the defaults field by field. Files ending in .toml are read as TOML,
// everything else as YAML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FileName
	}
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var file Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.merge(&file)
	return cfg, nil
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o *Config) {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.DataPath != "" {
		c.DataPath = o.DataPath
	}
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.GitHubURL != "" {
		c.GitHubURL = o.GitHubURL
	}
	if o.MaxHistogramBins != 0 {
		c.MaxHistogramBins = o.MaxHistogramBins
	}
	if o.ReadTimeout != 0 {
		c.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout != 0 {
		c.WriteTimeout = o.WriteTimeout
	}
	if o.Defaults.Attribute != "" {
		c.Defaults.Attribute = o.Defaults.Attribute
	}
	if o.Defaults.PlotlyBins != 0 {
		c.Defaults.PlotlyBins = o.Defaults.PlotlyBins
	}
	if o.Defaults.SeabornBins != 0 {
		c.Defaults.SeabornBins = o.Defaults.SeabornBins
	}
	if o.Defaults.Species != nil {
		c.Defaults.Species = o.Defaults.Species
	}
}

// Selection converts the configured defaults into an initial selection.
func (c *Config) Selection() reactive.Selection {
	return reactive.Selection{
		Attribute:   c.Defaults.Attribute,
		PlotlyBins:  c.Defaults.PlotlyBins,
		SeabornBins: c.Defaults.SeabornBins,
		Species:     reactive.NormalizeSpecies(c.Defaults.Species),
	}
}

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Addr == "" {
		errs = append(errs, "addr: must not be empty")
	}
	if cfg.MaxHistogramBins < 1 {
		errs = append(errs, fmt.Sprintf("max_histogram_bins: must be positive, got %d", cfg.MaxHistogramBins))
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, fmt.Sprintf("read_timeout: must be non-negative, got %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, fmt.Sprintf("write_timeout: must be non-negative, got %s", cfg.WriteTimeout))
	}
	if err := cfg.Selection().Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("defaults: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
