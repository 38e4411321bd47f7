// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spekgram.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// Run from an empty directory so a stray spekgram.yaml in the
	// working tree cannot leak into the test.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Width != DefaultWidth {
		t.Errorf("width = %d, want %d", cfg.Width, DefaultWidth)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("height = %d, want %d", cfg.Height, DefaultHeight)
	}
	if cfg.Palette != DefaultPalette {
		t.Errorf("palette = %q, want %q", cfg.Palette, DefaultPalette)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("log level = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfigFile(t, "defaults: [not: a: mapping")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
defaults:
  width: 2048
  height: 768
  log_scale: true
  rolloff: true
  palette: viridis
colors:
  stops:
    - position: 0.0
      color: "#000000"
    - position: 1.0
      color: "#FF00FF"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Width != 2048 || cfg.Height != 768 {
		t.Errorf("dimensions = %dx%d, want 2048x768", cfg.Width, cfg.Height)
	}
	if !cfg.LogScale || !cfg.Rolloff {
		t.Errorf("log_scale=%v rolloff=%v, want both true", cfg.LogScale, cfg.Rolloff)
	}
	if cfg.Palette != "viridis" {
		t.Errorf("palette = %q, want viridis", cfg.Palette)
	}
	if len(cfg.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(cfg.Stops))
	}
	if cfg.Stops[1].Color != "#FF00FF" || cfg.Stops[1].Position != 1.0 {
		t.Errorf("unexpected last stop: %+v", cfg.Stops[1])
	}
}

// Environment overrides win over both defaults and the file.
func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "defaults:\n  width: 800\n  palette: magma\n")

	t.Setenv("SPEKGRAM_WIDTH", "1600")
	t.Setenv("SPEKGRAM_PALETTE", "inferno")
	t.Setenv("SPEKGRAM_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Width != 1600 {
		t.Errorf("width = %d, want env override 1600", cfg.Width)
	}
	if cfg.Palette != "inferno" {
		t.Errorf("palette = %q, want env override inferno", cfg.Palette)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want env override warn", cfg.LogLevel)
	}
}

func TestValidateDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid", 1024, 512, false},
		{"zero width", 0, 512, true},
		{"negative height", 1024, -1, true},
		{"oversized", MaxImageDim + 1, 512, true},
		{"at limit", MaxImageDim, MaxImageDim, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			cfg.Width = tt.width
			cfg.Height = tt.height
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
