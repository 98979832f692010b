// Package config holds GeoRZA's defaults, the adjustable parameter ranges
// used by the interactive front ends, and environment/flag overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Mr-Dark-debug/georza/internal/resolution"
)

// Config is a complete snapshot of the model inputs and display settings.
type Config struct {
	Layer resolution.LayerParameters `json:"layer"`

	// Bars is the number of sampled offsets (error bars) per interface.
	Bars int `json:"bars"`

	// DepthMin and DepthMax bound the displayed depth range (m).
	DepthMin float64 `json:"depth_min_m"`
	DepthMax float64 `json:"depth_max_m"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// DefaultConfig returns the starting section: a 500 m layer at 3500 m
// imaged with a 65 Hz source out to 6 km.
func DefaultConfig() Config {
	return Config{
		Layer: resolution.LayerParameters{
			Thickness:     500,
			V1:            2000,
			V2:            2200,
			TopDepth:      3500,
			PeakFrequency: 65,
			MaxOffset:     6000,
		},
		Bars:     10,
		DepthMin: 1,
		DepthMax: 10000,
		LogLevel: "info",
	}
}

// Load returns DefaultConfig with GEORZA_* environment overrides applied.
func Load() Config {
	cfg := DefaultConfig()
	cfg.Layer.TopDepth = getEnvAsFloat("GEORZA_DEPTH", cfg.Layer.TopDepth)
	cfg.Layer.Thickness = getEnvAsFloat("GEORZA_THICKNESS", cfg.Layer.Thickness)
	cfg.Layer.V1 = getEnvAsFloat("GEORZA_V1", cfg.Layer.V1)
	cfg.Layer.V2 = getEnvAsFloat("GEORZA_V2", cfg.Layer.V2)
	cfg.Layer.PeakFrequency = getEnvAsFloat("GEORZA_FREQ", cfg.Layer.PeakFrequency)
	cfg.Layer.MaxOffset = getEnvAsFloat("GEORZA_MAX_OFFSET", cfg.Layer.MaxOffset)
	cfg.Bars = getEnvAsInt("GEORZA_BARS", cfg.Bars)
	cfg.DepthMin = getEnvAsFloat("GEORZA_DEPTH_MIN", cfg.DepthMin)
	cfg.DepthMax = getEnvAsFloat("GEORZA_DEPTH_MAX", cfg.DepthMax)
	cfg.LogLevel = getEnv("GEORZA_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("GEORZA_LOG_FILE", cfg.LogFile)
	return cfg
}

// BindFlags registers the layer and display flags on fs, writing into cfg.
// Current cfg values become the flag defaults.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.Layer.TopDepth, "depth", cfg.Layer.TopDepth, "Depth of the layer top (m)")
	fs.Float64Var(&cfg.Layer.Thickness, "thickness", cfg.Layer.Thickness, "Layer thickness (m)")
	fs.Float64Var(&cfg.Layer.V1, "v1", cfg.Layer.V1, "Overburden velocity (m/s)")
	fs.Float64Var(&cfg.Layer.V2, "v2", cfg.Layer.V2, "Layer velocity (m/s)")
	fs.Float64Var(&cfg.Layer.PeakFrequency, "freq", cfg.Layer.PeakFrequency, "Peak source frequency (Hz)")
	fs.Float64Var(&cfg.Layer.MaxOffset, "max-offset", cfg.Layer.MaxOffset, "Maximum source-receiver offset (m)")
	fs.IntVar(&cfg.Bars, "bars", cfg.Bars, "Number of sampled offsets")
	fs.Float64Var(&cfg.DepthMin, "depth-min", cfg.DepthMin, "Shallowest displayed depth (m)")
	fs.Float64Var(&cfg.DepthMax, "depth-max", cfg.DepthMax, "Deepest displayed depth (m)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
}

// Validate checks the layer and the display settings.
func (c Config) Validate() error {
	if err := c.Layer.Validate(); err != nil {
		return err
	}
	if c.Bars <= 0 {
		return fmt.Errorf("bars must be positive, got %d", c.Bars)
	}
	if c.DepthMax <= c.DepthMin {
		return fmt.Errorf("depth range [%g, %g] is empty", c.DepthMin, c.DepthMax)
	}
	return nil
}

// Get returns the current value of param.
func (c Config) Get(param Param) float64 {
	switch param {
	case ParamDepth:
		return c.Layer.TopDepth
	case ParamThickness:
		return c.Layer.Thickness
	case ParamV1:
		return c.Layer.V1
	case ParamV2:
		return c.Layer.V2
	case ParamFrequency:
		return c.Layer.PeakFrequency
	case ParamMaxOffset:
		return c.Layer.MaxOffset
	}
	return 0
}

// Set snaps v onto param's range and stores it. Depth and thickness are
// further reduced so the layer stays within DepthMax. The stored value is
// returned. Setting the same value twice is a no-op.
func (c *Config) Set(param Param, v float64) (float64, error) {
	r, ok := Ranges[param]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParam, param)
	}
	v = r.Clamp(v)

	switch param {
	case ParamDepth:
		if v+c.Layer.Thickness > c.DepthMax {
			v = max(r.Min, c.DepthMax-c.Layer.Thickness)
		}
		c.Layer.TopDepth = v
	case ParamThickness:
		if c.Layer.TopDepth+v > c.DepthMax {
			v = max(r.Min, c.DepthMax-c.Layer.TopDepth)
		}
		c.Layer.Thickness = v
	case ParamV1:
		c.Layer.V1 = v
	case ParamV2:
		c.Layer.V2 = v
	case ParamFrequency:
		c.Layer.PeakFrequency = v
	case ParamMaxOffset:
		c.Layer.MaxOffset = v
	}
	return v, nil
}

// Step moves param by n steps of its range (negative n moves down).
func (c *Config) Step(param Param, n int) (float64, error) {
	r, ok := Ranges[param]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParam, param)
	}
	return c.Set(param, c.Get(param)+float64(n)*r.Step)
}

// ErrUnknownParam is returned for a Param outside the defined set.
var ErrUnknownParam = errors.New("unknown parameter")

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	if value := getEnv(key, ""); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := getEnv(key, ""); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
