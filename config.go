// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the controller options.
type Config struct {
	MaxTextureSide   int     `yaml:"max_texture_side" toml:"max_texture_side"`
	DebugVertexLines bool    `yaml:"debug_vertex_lines" toml:"debug_vertex_lines"`
	FontGamma        float32 `yaml:"font_gamma" toml:"font_gamma"`

	// LogLevel is one of debug, info, warn or error. When set, the
	// controller logs to stderr at that level; when empty it uses the
	// package logger.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns the configuration matching the option defaults.
func DefaultConfig() Config {
	return Config{
		MaxTextureSide: DefaultMaxTextureSide,
		FontGamma:      DefaultFontGamma,
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file. Keys missing
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("uibridge: read config: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("uibridge: parse %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("uibridge: parse %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("uibridge: unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("uibridge: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.MaxTextureSide < 0 {
		return fmt.Errorf("max_texture_side must not be negative, got %d", c.MaxTextureSide)
	}
	if c.FontGamma < 0 {
		return fmt.Errorf("font_gamma must not be negative, got %g", c.FontGamma)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Options converts the configuration into controller options.
func (c Config) Options() []Option {
	opts := []Option{
		WithMaxTextureSide(c.MaxTextureSide),
		WithDebugVertexLines(c.DebugVertexLines),
		WithFontGamma(c.FontGamma),
	}
	if c.LogLevel != "" {
		if level, err := c.level(); err == nil {
			h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			opts = append(opts, WithLogger(slog.New(h)))
		}
	}
	return opts
}
