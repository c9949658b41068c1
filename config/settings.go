// Package config provides the configuration structure for the geocoder
// service: where to load the hierarchy from, how many worker goroutines to
// use while building the index, and the HTTP server's tuning knobs.
package config

import (
	"runtime"
	"strings"
)

// Config holds every configurable knob of the geocoder service.
type Config struct {
	HierarchyPath string `json:"hierarchy_path"` // Path to the hierarchy JSON file to load at startup
	LoadThreads   int    `json:"load_threads"`   // Worker goroutines used while building the index
	BeamSize      int    `json:"beam_size"`      // Beam width K used by the search engine
	MaxResults    int    `json:"max_results"`    // Upper bound on results returned per query
	Port          string `json:"port"`           // HTTP listen port, e.g. "8080"
}

// ApplyDefaults fills in zero-valued fields with the service's defaults.
func (c *Config) ApplyDefaults() {
	if c.LoadThreads == 0 {
		c.LoadThreads = runtime.NumCPU()
	}
	if c.BeamSize == 0 {
		c.BeamSize = 100
	}
	if c.MaxResults == 0 {
		c.MaxResults = 100
	}
	if c.Port == "" {
		c.Port = "8080"
	}
}

// Validate checks Config for internal consistency, returning a list of
// human-readable problems. An empty slice means the configuration is usable.
func (c *Config) Validate() []string {
	var problems []string

	if strings.TrimSpace(c.HierarchyPath) == "" {
		problems = append(problems, "hierarchy_path is required")
	}
	if c.LoadThreads < 0 {
		problems = append(problems, "load_threads cannot be negative")
	}
	if c.BeamSize < 1 {
		problems = append(problems, "beam_size must be at least 1")
	}
	if c.MaxResults < 1 {
		problems = append(problems, "max_results must be at least 1")
	}
	if c.MaxResults > c.BeamSize {
		problems = append(problems, "max_results cannot exceed beam_size")
	}
	if strings.TrimSpace(c.Port) == "" {
		problems = append(problems, "port is required")
	}

	return problems
}
