package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WATCHLIST_PATH", "BEST_PATH", "CHECK_INTERVAL_SEC", "APPEND_NEW_CODES", "USE_CHROME"} {
		t.Setenv(k, "")
	}

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.WatchlistPath != "data/wanted-sets.txt" {
		t.Errorf("WatchlistPath: got %q", cfg.WatchlistPath)
	}
	if cfg.BestPath != "data/best.txt" {
		t.Errorf("BestPath: got %q", cfg.BestPath)
	}
	if cfg.CheckInterval != 10*time.Second {
		t.Errorf("CheckInterval: got %v, want 10s", cfg.CheckInterval)
	}
	if !cfg.AppendNewCodes {
		t.Error("AppendNewCodes should default to true")
	}
	if cfg.UseChrome {
		t.Error("UseChrome should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHECK_INTERVAL_SEC", "60")
	t.Setenv("APPEND_NEW_CODES", "false")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.CheckInterval != time.Minute {
		t.Errorf("CheckInterval: got %v, want 1m", cfg.CheckInterval)
	}
	if cfg.AppendNewCodes {
		t.Error("AppendNewCodes should be false")
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries: got %d, want fallback 2", cfg.MaxRetries)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			WatchlistPath: "w", LatestPath: "l", BestPath: "b",
			CatalogURL: "http://example.com", CheckInterval: time.Second,
			FetchTimeout: time.Second, MaxRetries: 1,
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}

	tests := map[string]func(c *Config){
		"zero interval":  func(c *Config) { c.CheckInterval = 0 },
		"zero timeout":   func(c *Config) { c.FetchTimeout = 0 },
		"no retries":     func(c *Config) { c.MaxRetries = 0 },
		"same paths":     func(c *Config) { c.BestPath = c.LatestPath },
		"no catalog url": func(c *Config) { c.CatalogURL = "" },
		"no best path":   func(c *Config) { c.BestPath = "" },
	}
	for name, mutate := range tests {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadSelectors(t *testing.T) {
	sel, err := LoadSelectors("")
	if err != nil {
		t.Fatal(err)
	}
	if sel != DefaultSelectors() {
		t.Errorf("empty path should return defaults, got %+v", sel)
	}

	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte("item: \"div.product > a\"\nprice: span.price\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sel, err = LoadSelectors(path)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Item != "div.product > a" || sel.Price != "span.price" {
		t.Errorf("overrides not applied: %+v", sel)
	}
	if sel.Name != DefaultSelectors().Name {
		t.Errorf("Name should keep default, got %q", sel.Name)
	}

	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing selectors file")
	}
}
