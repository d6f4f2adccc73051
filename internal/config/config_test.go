package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg ClientConfig
	if err := yaml.Unmarshal(defaultClientYAML, &cfg); err != nil {
		t.Fatalf("embedded client.yaml does not parse: %v", err)
	}

	d := DefaultClientConfig()
	if cfg.Clock.Hz != d.Clock.Hz {
		t.Errorf("clock.hz = %d, expected %d", cfg.Clock.Hz, d.Clock.Hz)
	}
	if cfg.Net.MaxLine != d.Net.MaxLine {
		t.Errorf("net.max_line = %d, expected %d", cfg.Net.MaxLine, d.Net.MaxLine)
	}
	if cfg.Containers.MapOrder != d.Containers.MapOrder {
		t.Errorf("containers.map_order = %d, expected %d", cfg.Containers.MapOrder, d.Containers.MapOrder)
	}
	if cfg.Render != d.Render {
		t.Errorf("render = %+v, expected %+v", cfg.Render, d.Render)
	}
	if cfg.Input.ReleaseAfterTicks != d.Input.ReleaseAfterTicks {
		t.Errorf("input.release_after_ticks = %d, expected %d", cfg.Input.ReleaseAfterTicks, d.Input.ReleaseAfterTicks)
	}
	if len(cfg.Input.Keys.Shoot) != 2 || cfg.Input.Keys.Shoot[0] != " " {
		t.Errorf("input.keys.shoot = %q", cfg.Input.Keys.Shoot)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := []byte("clock:\n  hz: 60\ninput:\n  keys:\n    shoot: [\"k\"]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Clock.Hz != 60 {
		t.Errorf("clock.hz = %d, expected 60", cfg.Clock.Hz)
	}
	if cfg.Net.MaxLine != 512 {
		t.Errorf("net.max_line = %d, expected default 512", cfg.Net.MaxLine)
	}
	if len(cfg.Input.Keys.Shoot) != 1 || cfg.Input.Keys.Shoot[0] != "k" {
		t.Errorf("input.keys.shoot = %q, expected [k]", cfg.Input.Keys.Shoot)
	}
	if len(cfg.Input.Keys.Left) != 2 {
		t.Errorf("input.keys.left = %q, expected defaults", cfg.Input.Keys.Left)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("clock: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	negative := filepath.Join(dir, "negative.yaml")
	if err := os.WriteFile(negative, []byte("clock:\n  hz: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(negative); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		valid  bool
	}{
		{"defaults", func(*ClientConfig) {}, true},
		{"zero hz", func(c *ClientConfig) { c.Clock.Hz = 0 }, false},
		{"tiny line buffer", func(c *ClientConfig) { c.Net.MaxLine = 1 }, false},
		{"zero map order", func(c *ClientConfig) { c.Containers.MapOrder = 0 }, false},
		{"huge map order", func(c *ClientConfig) { c.Containers.MapOrder = 40 }, false},
		{"zero scale", func(c *ClientConfig) { c.Render.ScaleY = 0 }, false},
		{"zero release delay", func(c *ClientConfig) { c.Input.ReleaseAfterTicks = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultClientConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tc.valid)
			}
		})
	}
}
