// Package config loads voxtrack configuration.
//
// Values are layered, lowest precedence first: built-in defaults, an
// optional YAML file, then VOXTRACK_* environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chazu/voxtrack/internal/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix marks environment variables read by Load.
	EnvPrefix = "VOXTRACK_"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Config is the full voxtrack configuration.
type Config struct {
	Input   InputConfig    `koanf:"input"`
	Surface SurfaceConfig  `koanf:"surface"`
	Output  OutputConfig   `koanf:"output"`
	Log     logging.Config `koanf:"log"`
}

// InputConfig selects the region to analyse. Path is a .vol image,
// thresholded to [MinThreshold, MaxThreshold] (an inverted range selects
// nothing), or a .zy shape script
// digitised at Scale world units per voxel with Margin empty voxels
// around its bounding box.
type InputConfig struct {
	Path         string        `koanf:"path"`
	MinThreshold int           `koanf:"min_threshold"`
	MaxThreshold int           `koanf:"max_threshold"`
	Scale        float64       `koanf:"scale"`
	Margin       int           `koanf:"margin"`
	Timeout      time.Duration `koanf:"timeout"`
}

// SurfaceConfig controls boundary extraction.
type SurfaceConfig struct {
	Adjacency string `koanf:"adjacency"`
	Closed    bool   `koanf:"closed"`
	MaxSteps  int    `koanf:"max_steps"`
	Seed      uint64 `koanf:"seed"`
}

// OutputConfig controls mesh export. An empty Path disables export.
type OutputConfig struct {
	Path   string `koanf:"path"`
	Format string `koanf:"format"`
}

// Load reads defaults, then the YAML file at path when path is not empty,
// then environment variables, and validates the result.
//
// Environment variables map to keys by dropping EnvPrefix, lowercasing,
// and splitting on the first underscore:
//
//	VOXTRACK_SURFACE_MAX_STEPS -> surface.max_steps
//	VOXTRACK_LOG_LEVEL         -> log.level
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

// envKey maps VOXTRACK_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	return content, nil
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Input.Scale <= 0 {
		return fmt.Errorf("input.scale must be positive, got %g", c.Input.Scale)
	}
	if c.Input.Margin < 0 {
		return fmt.Errorf("input.margin must not be negative, got %d", c.Input.Margin)
	}
	if c.Input.Timeout <= 0 {
		return fmt.Errorf("input.timeout must be positive, got %s", c.Input.Timeout)
	}
	if c.Surface.Adjacency != "interior" && c.Surface.Adjacency != "exterior" {
		return fmt.Errorf("surface.adjacency must be 'interior' or 'exterior', got %q", c.Surface.Adjacency)
	}
	if c.Surface.MaxSteps <= 0 {
		return fmt.Errorf("surface.max_steps must be positive, got %d", c.Surface.MaxSteps)
	}
	if c.Output.Format != "obj" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be 'obj' or 'json', got %q", c.Output.Format)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
