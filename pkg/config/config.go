// Package config loads the deployment-level configuration YAML (§4.12):
// the scheduling timezone, default working window, minimum break
// duration, and summary-provider timeout.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Window is an HH:MM pair naming the default working window a generate
// request falls back to when none is supplied explicitly.
type Window struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Config is the top-level YAML document.
type Config struct {
	SchedulingZone           string `yaml:"scheduling_zone"`
	DefaultWindow            Window `yaml:"default_window"`
	MinBreakMinutes          int    `yaml:"min_break_minutes"`
	SummaryProviderTimeoutMs int    `yaml:"summary_provider_timeout_ms"`
}

// Default returns the configuration used when no file is supplied: UTC,
// a 09:00-17:00 window, a 5-minute break floor, and a 2s provider timeout.
func Default() Config {
	return Config{
		SchedulingZone:           "UTC",
		DefaultWindow:            Window{Start: "09:00", End: "17:00"},
		MinBreakMinutes:          5,
		SummaryProviderTimeoutMs: 2000,
	}
}

// Load reads and parses the YAML configuration at path, filling any
// unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if cfg.MinBreakMinutes < 1 {
		cfg.MinBreakMinutes = 1
	}
	return cfg, nil
}

// Location resolves SchedulingZone into a *time.Location.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.SchedulingZone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown scheduling_zone %q: %w", c.SchedulingZone, err)
	}
	return loc, nil
}

// SummaryProviderTimeout returns the configured timeout as a
// time.Duration.
func (c Config) SummaryProviderTimeout() time.Duration {
	return time.Duration(c.SummaryProviderTimeoutMs) * time.Millisecond
}
