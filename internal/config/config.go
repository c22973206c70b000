// Package config handles geomtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all tool settings.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Broadphase BroadphaseConfig `yaml:"broadphase"`
	Animation  AnimationConfig  `yaml:"animation"`
	Output     OutputConfig     `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// BroadphaseConfig holds collision pass settings.
type BroadphaseConfig struct {
	CellSize   float32 `yaml:"cell_size"`
	Workers    int     `yaml:"workers"`
	UseSpheres bool    `yaml:"use_spheres"` // test bounding spheres instead of boxes
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	DefaultTicksPerSecond float64 `yaml:"default_ticks_per_second"`
	Loop                  bool    `yaml:"loop"`
}

// OutputConfig controls how numbers are printed.
type OutputConfig struct {
	Precision int `yaml:"precision"` // digits after the decimal point
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Broadphase: BroadphaseConfig{
			CellSize:   4,
			Workers:    4,
			UseSpheres: false,
		},
		Animation: AnimationConfig{
			DefaultTicksPerSecond: 25,
			Loop:                  false,
		},
		Output: OutputConfig{
			Precision: 4,
		},
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Broadphase.CellSize > 0) {
		errs = append(errs, fmt.Errorf("broadphase.cell_size must be positive, got %v", c.Broadphase.CellSize))
	}
	if c.Broadphase.Workers < 1 {
		errs = append(errs, fmt.Errorf("broadphase.workers must be at least 1, got %d", c.Broadphase.Workers))
	}
	if !(c.Animation.DefaultTicksPerSecond > 0) {
		errs = append(errs, fmt.Errorf("animation.default_ticks_per_second must be positive, got %v", c.Animation.DefaultTicksPerSecond))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 9 {
		errs = append(errs, fmt.Errorf("output.precision must be within [0, 9], got %d", c.Output.Precision))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	return errors.Join(errs...)
}
