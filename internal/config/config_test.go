package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Address == "" || cfg.Server.DefaultLimit == 0 {
		t.Fatalf("default config missing server settings: %+v", cfg.Server)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault with missing file should not error: %v", err)
	}
	if cfg.Server.Address != DefaultConfig().Server.Address {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault with empty path should not error: %v", err)
	}
	if cfg.Server.Address != DefaultConfig().Server.Address {
		t.Fatalf("expected defaults for empty path")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	content := "paths:\n  style: style.tsv\n  topic: topic.tsv\n  metadata: metadata.tsv\nserver:\n  address: \":9090\"\n  default_limit: 5\n  maximum_limit: 50\nlogging:\n  level: debug\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.Style != "style.tsv" || cfg.Server.Address != ":9090" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected parsed config: %+v", cfg)
	}
}

func TestApplyPathOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = PathsConfig{Style: "a", Topic: "b", Metadata: "c"}
	cfg.ApplyPathOverrides("x", "", "z")
	if cfg.Paths.Style != "x" || cfg.Paths.Topic != "b" || cfg.Paths.Metadata != "z" {
		t.Fatalf("override should only replace non-empty args, got %+v", cfg.Paths)
	}
}
