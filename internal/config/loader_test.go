package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults drifted from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	path := filepath.Join(t.TempDir(), "dex.yaml")
	data := []byte(`
api:
  base_url: https://dex.example.com/api/
  timeout: 5s
browse:
  per_page: 12
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://dex.example.com/api" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Browse.PerPage != 12 {
		t.Errorf("PerPage = %d", cfg.Browse.PerPage)
	}
	// Unset fields keep their defaults.
	if cfg.HTTP.MaxLimit != 72 {
		t.Errorf("MaxLimit = %d, want default 72", cfg.HTTP.MaxLimit)
	}
	if cfg.Browse.DefaultRegion != "national" {
		t.Errorf("DefaultRegion = %q", cfg.Browse.DefaultRegion)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dex.yaml")
	if err := os.WriteFile(path, []byte("browse:\n  per_page: 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvBaseURL, "http://10.0.0.2:8000/api")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.2:8000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("browse: [not a map"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	zero := filepath.Join(dir, "zero.yaml")
	os.WriteFile(zero, []byte("browse:\n  per_page: 0\n"), 0o644)
	if _, err := Load(zero); err == nil {
		t.Error("expected validation error for per_page 0")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.dex/roster.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".dex", "roster.db") {
		t.Errorf("ExpandHome = %q", got)
	}
}
