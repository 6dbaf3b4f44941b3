package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EmundoT/gate-check/internal/testutil"
	"github.com/EmundoT/gate-check/internal/types"
)

func TestFileConfigStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileConfigStore(dir)

	cfg := types.Config{
		Categories: map[string]types.CategoryConfig{
			"format": {
				Gates: map[string]types.GateConfig{
					"gofmt": {Enabled: testutil.BoolPtr(true)},
					"black": {Enabled: testutil.BoolPtr(false)},
				},
			},
			"coverage": {
				Gates: map[string]types.GateConfig{
					"gocover": {Options: map[string]string{"min_percent": "80"}},
				},
			},
		},
		DisabledGates: []string{"duplication:dupl"},
		Workers:       6,
		FailFast:      true,
		DefaultAlias:  "pr",
	}

	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("Exists should be true after Save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	testutil.AssertEqual(t, loaded, cfg, "loaded config")
}

func TestFileConfigStore_MissingFileLoadsZeroConfig(t *testing.T) {
	store := NewFileConfigStore(t.TempDir())

	if store.Exists() {
		t.Fatal("Exists should be false before Save")
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("missing gates.yml must load as the zero config, got: %v", err)
	}
	if cfg.GateDisabled("format:gofmt") {
		t.Error("zero config disables nothing")
	}
	if cfg.Workers != 0 || cfg.FailFast {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestFileConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store := NewFileConfigStore(dir)

	want := filepath.Join(dir, ConfigFile)
	if store.Path() != want {
		t.Errorf("Path() = %q, want %q", store.Path(), want)
	}
}

func TestFileConfigStore_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte("categories: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileConfigStore(dir)
	if _, err := store.Load(); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestFileConfigStore_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	big := strings.Repeat("# padding\n", 200_000) // well past 1MB
	if err := os.WriteFile(path, []byte(big), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileConfigStore(dir)
	if _, err := store.Load(); err == nil {
		t.Error("expected oversized config to be rejected")
	}
}

func TestFileConfigStore_HumanEditedConfig(t *testing.T) {
	dir := t.TempDir()
	content := `categories:
  lint:
    enabled: false
  coverage:
    gates:
      gocover:
        options:
          min_percent: "85"
workers: 2
default_alias: full
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileConfigStore(dir)
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.GateDisabled("lint:govet") {
		t.Error("category disable should be honored")
	}
	if cfg.GateConfigFor("coverage:gocover").Options["min_percent"] != "85" {
		t.Error("gate options should be honored")
	}
	if cfg.Workers != 2 || cfg.DefaultAlias != "full" {
		t.Errorf("top-level fields mismatch: %+v", cfg)
	}
}
