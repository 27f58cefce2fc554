package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func TestLoadConfig_CreatesDefaultFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultDeck != "family" || cfg.Generate.MaxAttempts != 1000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	data, err := os.ReadFile(GetConfigFilePath())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "default_deck") {
		t.Errorf("config file missing default_deck:\n%s", data)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)

	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "default_deck = \"office\"\n[render]\nimage_dpi = 150\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDeck != "office" || cfg.Render.ImageDPI != 150 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Render.BorderColor != "#333333" || cfg.Generate.GridSize != 16 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BINGOMANCER_LOG_LEVEL", "debug")
	t.Setenv("BINGOMANCER_GENERATE_MAX_ATTEMPTS", "50")
	t.Setenv("BINGOMANCER_CACHE_TTL", "2m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" || cfg.Generate.MaxAttempts != 50 {
		t.Errorf("environment not applied: %+v", cfg)
	}
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil || ttl != 2*time.Minute {
		t.Errorf("ttl = %v, %v", ttl, err)
	}
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	isolate(t)
	t.Setenv("BINGOMANCER_CACHE_TTL", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for an invalid ttl")
	}
}

func TestSetDefaultDeck(t *testing.T) {
	isolate(t)
	t.Setenv("BINGOMANCER_LOG_LEVEL", "error")

	if err := SetDefaultDeck("office"); err != nil {
		t.Fatal(err)
	}
	name, err := GetDefaultDeck()
	if err != nil || name != "office" {
		t.Errorf("GetDefaultDeck = %q, %v", name, err)
	}

	data, err := os.ReadFile(GetConfigFilePath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Error("environment override was written to the config file")
	}
}

func TestPaths(t *testing.T) {
	dir := isolate(t)

	if got := GetDeckLibraryPath(); got != filepath.Join(dir, "data", "bingo", "decks") {
		t.Errorf("library path = %s", got)
	}
	if got := Default().GetDatabasePath(); got != filepath.Join(dir, "data", "bingomancer", "boards.db") {
		t.Errorf("database path = %s", got)
	}
	cfg := Default()
	cfg.DatabasePath = "/tmp/x.db"
	if cfg.GetDatabasePath() != "/tmp/x.db" {
		t.Error("explicit database path ignored")
	}
	if got := GetCacheDir(); got != filepath.Join(dir, "cache", "bingomancer") {
		t.Errorf("cache dir = %s", got)
	}
}
