// Package config loads scan tuning from a YAML file layered over the
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"keywatch/internal/shared"
)

var ErrInvalid = errors.New("invalid configuration")

// Load returns the defaults overlaid with the file at path. An empty path
// returns the defaults unchanged.
func Load(path string) (shared.Config, error) {
	cfg := shared.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	//nolint:gosec // path comes from the --config flag
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data on the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back.
func Parse(data []byte) (shared.Config, error) {
	cfg := shared.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Validate(cfg shared.Config) error {
	var errs []error

	if cfg.BasicThreshold < 0 || cfg.BasicThreshold > 100 {
		errs = append(errs, fmt.Errorf("basic_threshold %d out of range [0,100]", cfg.BasicThreshold))
	}
	if cfg.AggressiveThreshold < 0 || cfg.AggressiveThreshold > 100 {
		errs = append(errs, fmt.Errorf("aggressive_threshold %d out of range [0,100]", cfg.AggressiveThreshold))
	}
	if cfg.MinScanDuration < 0 {
		errs = append(errs, fmt.Errorf("min_scan_duration must not be negative"))
	}
	if cfg.ProgressStep < 0 {
		errs = append(errs, fmt.Errorf("progress_step must not be negative"))
	}
	if cfg.CPUSampleWindow <= 0 {
		errs = append(errs, fmt.Errorf("cpu_sample_window must be positive"))
	}
	if cfg.ConfirmTimeout < 0 {
		errs = append(errs, fmt.Errorf("confirm_timeout must not be negative"))
	}

	w := cfg.Weights
	for name, v := range map[string]float64{
		"hidden_points":           w.HiddenPoints,
		"thread_points":           w.ThreadPoints,
		"thread_cap":              w.ThreadCap,
		"uptime_cap":              w.UptimeCap,
		"cpu_multiplier":          w.CPUMultiplier,
		"cpu_cap":                 w.CPUCap,
		"scripted_runtime_points": w.ScriptedRuntimePoints,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("weights.%s must not be negative", name))
		}
	}
	if w.UptimeDivisor <= 0 {
		errs = append(errs, fmt.Errorf("weights.uptime_divisor must be positive"))
	}
	if w.MaxScore <= 0 || w.MaxScore > 100 {
		errs = append(errs, fmt.Errorf("weights.max_score %d out of range (0,100]", w.MaxScore))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
