// Package config loads the JSON tuning file consumed by the decimate
// CLI. Fields are pointers so a partial file overrides only what it
// names; the Get* accessors supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig holds the decimation parameters a pipeline can pin per
// asset class. The same JSON schema works for one-off runs and batch
// jobs, so partial configs are safe.
type TuningConfig struct {
	// Exactly one of TargetVertices or TargetRatio should be set; when
	// both are present the explicit vertex count wins.
	TargetVertices *int     `json:"target_vertices,omitempty"`
	TargetRatio    *float64 `json:"target_ratio,omitempty"`

	// Threshold enables proximity clustering when positive.
	Threshold *float64 `json:"threshold,omitempty"`

	// Optional output artefacts.
	WireframePNG *string `json:"wireframe_png,omitempty"`
	ScatterHTML  *string `json:"scatter_html,omitempty"`
	RunLogDB     *string `json:"run_log_db,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Omitted
// fields keep their defaults.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are in range.
func (c *TuningConfig) Validate() error {
	if c.TargetVertices != nil && *c.TargetVertices < 1 {
		return fmt.Errorf("target_vertices must be at least 1, got %d", *c.TargetVertices)
	}
	if c.TargetRatio != nil {
		if *c.TargetRatio <= 0 || *c.TargetRatio > 1 {
			return fmt.Errorf("target_ratio must be in (0, 1], got %f", *c.TargetRatio)
		}
	}
	if c.Threshold != nil && *c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %f", *c.Threshold)
	}
	return nil
}

// ResolveTarget returns the requested vertex count for a mesh of
// inputVertices vertices: the explicit count when set, otherwise the
// ratio applied to the input size (minimum 1), otherwise the default
// halving ratio.
func (c *TuningConfig) ResolveTarget(inputVertices int) int {
	if c.TargetVertices != nil {
		return *c.TargetVertices
	}
	ratio := 0.5 // default
	if c.TargetRatio != nil {
		ratio = *c.TargetRatio
	}
	target := int(float64(inputVertices) * ratio)
	if target < 1 {
		target = 1
	}
	return target
}

// GetThreshold returns the clustering threshold, 0 (disabled) by default.
func (c *TuningConfig) GetThreshold() float64 {
	if c.Threshold == nil {
		return 0
	}
	return *c.Threshold
}

// GetWireframePNG returns the wireframe output path, empty when unset.
func (c *TuningConfig) GetWireframePNG() string {
	if c.WireframePNG == nil {
		return ""
	}
	return *c.WireframePNG
}

// GetScatterHTML returns the scatter page output path, empty when unset.
func (c *TuningConfig) GetScatterHTML() string {
	if c.ScatterHTML == nil {
		return ""
	}
	return *c.ScatterHTML
}

// GetRunLogDB returns the run-log database path, empty when unset.
func (c *TuningConfig) GetRunLogDB() string {
	if c.RunLogDB == nil {
		return ""
	}
	return *c.RunLogDB
}
