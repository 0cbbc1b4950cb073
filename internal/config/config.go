// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the spmvstat run configuration.
//
// A configuration file is YAML. Any ${VAR} in it is replaced by the
// value of environment variable VAR before parsing, so secrets such as
// database DSNs and InfluxDB tokens can live in the environment or in
// a .env file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spmvbench/spmvstat/benchseries"
)

// Config is a run configuration.
type Config struct {
	// Results is the directory holding the benchmark CSV files.
	Results string `yaml:"results"`
	// Views lists the views to compute. Empty means all views.
	Views []string `yaml:"views"`
	// Schedules orders schedules in output and charts.
	Schedules []string `yaml:"schedules"`
	// Percentile is the quantile of the percentile views.
	Percentile float64 `yaml:"percentile"`
	// ParallelLoads is the number of files loaded concurrently.
	ParallelLoads int `yaml:"parallel_loads"`

	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
	Influx   InfluxConfig   `yaml:"influx"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // text, csv, json or html
	Charts string `yaml:"charts"` // directory for PNG charts; empty for none
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite3 or mysql
	DSN    string `yaml:"dsn"`    // empty disables the database sink
}

type InfluxConfig struct {
	URL    string `yaml:"url"` // empty disables the InfluxDB sink
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

// Formats are the supported output formats.
var Formats = []string{"text", "csv", "json", "html"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Results:       "results",
		Schedules:     []string{"static", "dynamic", "guided"},
		Percentile:    benchseries.DefaultPercentile,
		ParallelLoads: 1,
		Output:        OutputConfig{Format: "text"},
		Database:      DatabaseConfig{Driver: "sqlite3"},
	}
}

// Load reads the configuration file at path on top of Default and
// validates it. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expandEnvVars(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", path, err)
	}
	return cfg, nil
}

var envVarRE = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the value of VAR. References to
// unset or empty variables are left as is.
func expandEnvVars(content string) string {
	return envVarRE.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	if !(c.Percentile > 0 && c.Percentile <= 1) {
		return fmt.Errorf("percentile must be in (0, 1], got %v", c.Percentile)
	}
	if c.ParallelLoads < 1 {
		return fmt.Errorf("parallel_loads must be at least 1, got %d", c.ParallelLoads)
	}
	if _, err := c.ParsedViews(); err != nil {
		return err
	}
	if !contains(Formats, c.Output.Format) {
		return fmt.Errorf("unknown output format %q (want one of %v)", c.Output.Format, Formats)
	}
	if c.Database.DSN != "" && c.Database.Driver != "sqlite3" && c.Database.Driver != "mysql" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Influx.URL != "" && (c.Influx.Org == "" || c.Influx.Bucket == "") {
		return errors.New("influx: org and bucket are required when url is set")
	}
	return nil
}

// ParsedViews returns the configured views, or every view if none are
// configured.
func (c *Config) ParsedViews() ([]benchseries.View, error) {
	if len(c.Views) == 0 {
		return benchseries.AllViews(), nil
	}
	var vs []benchseries.View
	for _, name := range c.Views {
		v, err := benchseries.ParseView(name)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// LoadEnv loads environment variables from the .env file at path. An
// empty path means ".env" in the working directory, which may be
// absent. Variables already set are not overridden.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	return godotenv.Load(path)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
