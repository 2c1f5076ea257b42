package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/MillPool/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Pool.UrgentDaysThreshold = 5
	cfg.Theme = "dark"
	cfg.ListenAddr = ":9090"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Pool.UrgentDaysThreshold != 5 {
		t.Errorf("expected UrgentDaysThreshold=5, got %d", loaded.Pool.UrgentDaysThreshold)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.ListenAddr != ":9090" {
		t.Errorf("expected ListenAddr=:9090, got %s", loaded.ListenAddr)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Pool != defaults.Pool {
		t.Errorf("expected default pool settings %+v, got %+v", defaults.Pool, cfg.Pool)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "millpool.yaml")
	yamlDoc := "pool:\n  urgent_days_threshold: 1\n  max_sheets_per_pool: 2\ntheme: light\n"
	if err := os.WriteFile(path, []byte(yamlDoc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if cfg.Pool.UrgentDaysThreshold != 1 || cfg.Pool.MaxSheetsPerPool != 2 {
		t.Errorf("yaml values not applied: %+v", cfg.Pool)
	}
	if cfg.Pool.SheetWidth != 2.75 || cfg.Pool.SheetHeight != 2.05 {
		t.Errorf("missing sheet size should keep defaults, got %+v", cfg.Pool)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
}

func TestSaveAppConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	cfg := model.DefaultAppConfig()
	cfg.Pool.SheetWidth = 3.05

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.Pool.SheetWidth != 3.05 {
		t.Errorf("expected SheetWidth=3.05, got %f", loaded.Pool.SheetWidth)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not-json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !model.IsKind(err, model.KindInvalidData) {
		t.Errorf("expected invalid_data kind, got %v", err)
	}
}

func TestBacklogPathFor(t *testing.T) {
	cfg := model.DefaultAppConfig()
	if got := BacklogPathFor(cfg, "/etc/millpool/config.json"); got != filepath.Join("/etc/millpool", "backlog.json") {
		t.Errorf("unexpected default backlog path %s", got)
	}
	cfg.BacklogPath = "/data/orders.json"
	if got := BacklogPathFor(cfg, "/etc/millpool/config.json"); got != "/data/orders.json" {
		t.Errorf("expected explicit backlog path, got %s", got)
	}
}
