// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads chart set files.
//
// A chart set is a YAML document listing charts and where to show
// them:
//
//	output:
//	  dir: charts
//	  format: svg
//	charts:
//	  - name: ga-pop
//	    source: ga.csv
//	    group_by: pop_size,mutation_rate
//	    x: pop_size
//	    series: mutation_rate
//	    mode: line
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/knapsack-heuristics/benchviz/benchplot"
	"github.com/knapsack-heuristics/benchviz/pipeline"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are the files Load looks for when it isn't given a
// path, in order.
var DefaultFiles = []string{"benchviz.yaml", "charts.yaml"}

// Config is a chart set.
type Config struct {
	Output Output           `yaml:"output"`
	Charts []pipeline.Chart `yaml:"charts"`

	// Path is the file the config was loaded from, or "" for the
	// defaults.
	Path string `yaml:"-"`
}

// Output says where figures go.
type Output struct {
	// Dir is the directory image files are written to.
	Dir string `yaml:"dir"`
	// Format is the image format: png, svg or pdf.
	Format string `yaml:"format"`
	// Terminal draws figures in the terminal instead of writing
	// files.
	Terminal bool `yaml:"terminal"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Output: Output{Dir: "charts", Format: "png"},
	}
}

// Load reads the chart set at path. If path is empty, Load reads the
// first of DefaultFiles that exists, or returns Default if there is
// none.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse parses and validates a chart set.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting of c.
func (c *Config) Validate() error {
	if !slices.Contains(benchplot.Formats, c.Output.Format) {
		return fmt.Errorf("output: unknown format %q", c.Output.Format)
	}
	names := make(map[string]bool)
	for i := range c.Charts {
		ch := &c.Charts[i]
		if err := ch.Validate(); err != nil {
			return err
		}
		if ch.Name == "" {
			continue
		}
		if names[ch.Name] {
			return fmt.Errorf("chart %q defined twice", ch.Name)
		}
		names[ch.Name] = true
	}
	return nil
}

// Dir returns the directory chart sources are relative to: the
// directory holding the config file.
func (c *Config) Dir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Select returns the charts with the given names, in the order
// named. With no names, it returns every chart.
func (c *Config) Select(names ...string) ([]pipeline.Chart, error) {
	if len(names) == 0 {
		return c.Charts, nil
	}
	var out []pipeline.Chart
	for _, name := range names {
		i := slices.IndexFunc(c.Charts, func(ch pipeline.Chart) bool { return ch.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("no chart named %q", name)
		}
		out = append(out, c.Charts[i])
	}
	return out, nil
}
