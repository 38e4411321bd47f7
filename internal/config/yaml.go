// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the config file. It only carries the
// persistent preferences; per-run options like the input file stay on
// the command line.
type fileConfig struct {
	LogLevel string `yaml:"log_level"`
	Defaults struct {
		Width    int    `yaml:"width"`
		Height   int    `yaml:"height"`
		LogScale bool   `yaml:"log_scale"`
		Rolloff  bool   `yaml:"rolloff"`
		Verbose  bool   `yaml:"verbose"`
		Palette  string `yaml:"palette"`
	} `yaml:"defaults"`
	Colors struct {
		Stops []ColorStop `yaml:"stops"`
	} `yaml:"colors"`
}

// LoadConfig loads configuration from a YAML file specified by path.
// If path is empty, it searches default locations. If no file is
// found, it uses built-in defaults. After loading it applies
// environment variable overrides and validates the final
// configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{"spekgram.yaml"}
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates,
				filepath.Join(home, ".config", "spekgram", "config.yaml"))
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyFile(&fc)

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyFile copies the set fields of a parsed config file over the
// defaults. Zero-valued numeric fields mean "not set" and keep the
// default.
func (c *Config) applyFile(fc *fileConfig) {
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.Defaults.Width > 0 {
		c.Width = fc.Defaults.Width
	}
	if fc.Defaults.Height > 0 {
		c.Height = fc.Defaults.Height
	}
	c.LogScale = fc.Defaults.LogScale
	c.Rolloff = fc.Defaults.Rolloff
	c.Verbose = fc.Defaults.Verbose
	if fc.Defaults.Palette != "" {
		c.Palette = fc.Defaults.Palette
	}
	if len(fc.Colors.Stops) > 0 {
		c.Stops = fc.Colors.Stops
	}
}

// Validate rejects configurations the renderer cannot honor.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Width > MaxImageDim || c.Height > MaxImageDim {
		return fmt.Errorf("image dimensions %dx%d exceed the %d pixel limit", c.Width, c.Height, MaxImageDim)
	}
	return nil
}

// applyEnvOverrides applies SPEKGRAM_* environment variables on top of
// whatever the file provided.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SPEKGRAM_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("SPEKGRAM_PALETTE"); ok {
		c.Palette = val
	}
	if val, ok := os.LookupEnv("SPEKGRAM_WIDTH"); ok {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.Width = n
		}
	}
	if val, ok := os.LookupEnv("SPEKGRAM_HEIGHT"); ok {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.Height = n
		}
	}
}
