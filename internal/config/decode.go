// Package config defines the decoding pipeline configuration.
//
// The schema is plain JSON with optional fields so partial configs are safe:
// fields omitted from the file keep their defaults, exposed through the Get*
// accessors. Validation is eager and never clamps; an out-of-range value is
// rejected before any decoding work starts.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrInvalidConfig wraps every validation failure so callers can branch on it.
var ErrInvalidConfig = errors.New("invalid decode config")

// Defaults for optional tuning parameters.
const (
	// DefaultLambda trades edge distance against endpoint quality in the
	// flow cost. Zero would ignore quality entirely.
	DefaultLambda = 0.5
	// DefaultMergeRadius is the intra-round bleed-through tolerance in the
	// same spatial units as spot positions (typically pixels).
	DefaultMergeRadius = 1.0
)

// DecodeConfig holds the tuning parameters for graph-based decoding.
// Pointer fields distinguish "omitted" from "explicitly zero".
type DecodeConfig struct {
	// SearchRadius is the maximum inter-round distance for an initial
	// candidate edge. Required, must be > 0.
	SearchRadius *float64 `json:"search_radius,omitempty"`

	// SearchRadiusMax is the maximum inter-round distance for repair edges
	// added within an existing component. Defaults to SearchRadius and must
	// not be smaller than it.
	SearchRadiusMax *float64 `json:"search_radius_max,omitempty"`

	// Lambda weights endpoint quality against distance in edge costs.
	Lambda *float64 `json:"lambda,omitempty"`

	// MergeRadius is the intra-round merge distance for consolidating
	// candidates detected in different channels at one physical location.
	MergeRadius *float64 `json:"merge_radius,omitempty"`

	// Workers bounds the per-component decode pool. Zero or omitted means
	// runtime.NumCPU().
	Workers *int `json:"workers,omitempty"`
}

// NewDecodeConfig returns a config with the required search radius set and
// everything else defaulted.
func NewDecodeConfig(searchRadius float64) *DecodeConfig {
	return &DecodeConfig{SearchRadius: &searchRadius}
}

// GetSearchRadius returns the configured search radius, or 0 if unset.
// Validate rejects the unset case.
func (c *DecodeConfig) GetSearchRadius() float64 {
	if c.SearchRadius == nil {
		return 0
	}
	return *c.SearchRadius
}

// GetSearchRadiusMax returns the repair radius, defaulting to the search
// radius so repair is a no-op unless explicitly widened.
func (c *DecodeConfig) GetSearchRadiusMax() float64 {
	if c.SearchRadiusMax == nil {
		return c.GetSearchRadius()
	}
	return *c.SearchRadiusMax
}

// GetLambda returns the quality weighting factor.
func (c *DecodeConfig) GetLambda() float64 {
	if c.Lambda == nil {
		return DefaultLambda
	}
	return *c.Lambda
}

// GetMergeRadius returns the intra-round merge distance.
func (c *DecodeConfig) GetMergeRadius() float64 {
	if c.MergeRadius == nil {
		return DefaultMergeRadius
	}
	return *c.MergeRadius
}

// GetWorkers returns the decode pool size, never less than 1.
func (c *DecodeConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.NumCPU()
	}
	return *c.Workers
}

// Validate checks all parameters eagerly. Invalid values are errors, never
// silently clamped.
func (c *DecodeConfig) Validate() error {
	if c.SearchRadius == nil {
		return fmt.Errorf("%w: search_radius is required", ErrInvalidConfig)
	}
	if *c.SearchRadius <= 0 {
		return fmt.Errorf("%w: search_radius must be > 0, got %v", ErrInvalidConfig, *c.SearchRadius)
	}
	if c.SearchRadiusMax != nil && *c.SearchRadiusMax < *c.SearchRadius {
		return fmt.Errorf("%w: search_radius_max %v < search_radius %v",
			ErrInvalidConfig, *c.SearchRadiusMax, *c.SearchRadius)
	}
	if c.Lambda != nil && *c.Lambda < 0 {
		return fmt.Errorf("%w: lambda must be >= 0, got %v", ErrInvalidConfig, *c.Lambda)
	}
	if c.MergeRadius != nil && *c.MergeRadius <= 0 {
		return fmt.Errorf("%w: merge_radius must be > 0, got %v", ErrInvalidConfig, *c.MergeRadius)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %v", ErrInvalidConfig, *c.Workers)
	}
	return nil
}

// LoadDecodeConfig loads a DecodeConfig from a JSON file. The file must have
// a .json extension and stay under a safety size cap.
func LoadDecodeConfig(path string) (*DecodeConfig, error) {
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

	cfg := &DecodeConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
