// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want Config
	}{
		{
			name: "yaml",
			file: "bridge.yaml",
			body: "max_texture_side: 4096\ndebug_vertex_lines: true\nfont_gamma: 0.8\nlog_level: debug\n",
			want: Config{MaxTextureSide: 4096, DebugVertexLines: true, FontGamma: 0.8, LogLevel: "debug"},
		},
		{
			name: "toml",
			file: "bridge.toml",
			body: "max_texture_side = 2048\nlog_level = \"warn\"\n",
			want: Config{MaxTextureSide: 2048, FontGamma: DefaultFontGamma, LogLevel: "warn"},
		},
		{
			name: "empty yaml keeps defaults",
			file: "empty.yml",
			body: "",
			want: DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(writeConfig(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, file, body, want string
	}{
		{"unknown extension", "bridge.json", "{}", "unsupported config format"},
		{"unknown yaml key", "bridge.yaml", "max_texture: 1\n", "parse"},
		{"unknown toml key", "bridge.toml", "gamma = 1.0\n", "parse"},
		{"negative side", "bridge.yaml", "max_texture_side: -1\n", "max_texture_side"},
		{"bad level", "bridge.toml", "log_level = \"loud\"\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() of a missing file succeeded")
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{MaxTextureSide: 1024, DebugVertexLines: true, FontGamma: 1, LogLevel: "error"}
	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(&o)
	}
	if o.maxTextureSide != 1024 || !o.debugVertexLines || o.fontGamma != 1 {
		t.Errorf("options = %+v", o)
	}
	if o.logger == nil {
		t.Error("log_level did not install a logger")
	}

	o = defaultOptions()
	for _, opt := range DefaultConfig().Options() {
		opt(&o)
	}
	if o.logger != nil {
		t.Error("default config installed a logger")
	}
	if o.maxTextureSide != DefaultMaxTextureSide || o.fontGamma != DefaultFontGamma {
		t.Errorf("default options = %+v", o)
	}
}
