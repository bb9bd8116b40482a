package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `compiler:
  namespace: example.com/site/views
  imports: [strings, fmt]
  resources:
    - "resources/**/*.yaml"
  strict_base_type: true
plugin:
  module_dir: ../host
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := DefaultConfig()
	want.Compiler.Namespace = "example.com/site/views"
	want.Compiler.Imports = []string{"strings", "fmt"}
	want.Compiler.Resources = []string{"resources/**/*.yaml"}
	want.Compiler.StrictBaseType = true
	want.Plugin.ModuleDir = "../host"
	want.Logging.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("compiler: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected defaults, got %+v", cfg.Logging)
	}

	if err := os.MkdirAll(filepath.Join(dir, ".viewgen"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".viewgen", "config.yaml"), []byte("logging:\n  format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected .viewgen/config.yaml to load, got %+v", cfg.Logging)
	}
}
