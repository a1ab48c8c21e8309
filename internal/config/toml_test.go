package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Play.Keys != nil || cfg.Play.Seed != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPlaySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[play]
keys = ["d", "k"]
skip-key = "s"
seed = 42
hints = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Play.Keys == nil || len(*cfg.Play.Keys) != 2 || (*cfg.Play.Keys)[1] != "k" {
		t.Fatalf("unexpected keys: %v", cfg.Play.Keys)
	}
	if cfg.Play.SkipKey == nil || *cfg.Play.SkipKey != "s" {
		t.Fatalf("unexpected skip key: %v", cfg.Play.SkipKey)
	}
	if cfg.Play.Seed == nil || *cfg.Play.Seed != 42 {
		t.Fatalf("unexpected seed: %v", cfg.Play.Seed)
	}
	if cfg.Play.Hints == nil || !*cfg.Play.Hints {
		t.Fatalf("expected hints to be enabled")
	}
	if cfg.Play.QuitKey != nil || cfg.Play.FPS != nil {
		t.Fatalf("expected unset fields to stay nil")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[play]\nspeed = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "mindsight", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "mindsight", "presets.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "mindsight", "mindsight.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
