package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.FetchTimeout != DefaultFetchTimeoutMs {
		t.Errorf("FetchTimeout = %d, want %d", cfg.FetchTimeout, DefaultFetchTimeoutMs)
	}
	if cfg.FetchConcurrency != DefaultFetchConcurrency {
		t.Errorf("FetchConcurrency = %d, want %d", cfg.FetchConcurrency, DefaultFetchConcurrency)
	}
	if cfg.Locale != DefaultLocale {
		t.Errorf("Locale = %q, want %q", cfg.Locale, DefaultLocale)
	}
	if !cfg.CacheOn() {
		t.Error("cache should default to on")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		if cfg.FetchTimeout != DefaultFetchTimeoutMs {
			t.Errorf("FetchTimeout = %d, want %d", cfg.FetchTimeout, DefaultFetchTimeoutMs)
		}
		if cfg.FetchConcurrency != DefaultFetchConcurrency {
			t.Errorf("FetchConcurrency = %d, want %d", cfg.FetchConcurrency, DefaultFetchConcurrency)
		}
	})

	t.Run("preserves non-zero values", func(t *testing.T) {
		off := false
		cfg := &Config{
			FetchTimeout:     5000,
			FetchConcurrency: 1,
			Locale:           "sv-SE",
			CacheEnabled:     &off,
		}
		applyDefaults(cfg)
		if cfg.FetchTimeout != 5000 {
			t.Errorf("FetchTimeout = %d, want 5000", cfg.FetchTimeout)
		}
		if cfg.FetchConcurrency != 1 {
			t.Errorf("FetchConcurrency = %d, want 1", cfg.FetchConcurrency)
		}
		if cfg.Locale != "sv-SE" {
			t.Errorf("Locale = %q, want sv-SE", cfg.Locale)
		}
		if cfg.CacheOn() {
			t.Error("CacheOn() = true, want false")
		}
	})
}

func TestFetchTimeoutDuration(t *testing.T) {
	cfg := &Config{FetchTimeout: 30000}
	got := cfg.FetchTimeoutDuration()
	want := 30 * time.Second
	if got != want {
		t.Errorf("FetchTimeoutDuration() = %v, want %v", got, want)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	off := false
	cfg := &Config{
		FetchTimeout:     12000,
		FetchConcurrency: 8,
		Locale:           "de",
		CacheEnabled:     &off,
	}

	if err := saveTo(tmpDir, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := loadFrom(filepath.Join(tmpDir, "config.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.FetchTimeout != cfg.FetchTimeout {
		t.Errorf("FetchTimeout = %d, want %d", loaded.FetchTimeout, cfg.FetchTimeout)
	}
	if loaded.FetchConcurrency != cfg.FetchConcurrency {
		t.Errorf("FetchConcurrency = %d, want %d", loaded.FetchConcurrency, cfg.FetchConcurrency)
	}
	if loaded.Locale != "de" {
		t.Errorf("Locale = %q, want de", loaded.Locale)
	}
	if loaded.CacheOn() {
		t.Error("CacheOn() = true after round trip, want false")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FetchTimeout != DefaultFetchTimeoutMs {
		t.Errorf("FetchTimeout = %d, want default", cfg.FetchTimeout)
	}
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"locale": "fr"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q, want fr", cfg.Locale)
	}
	if cfg.FetchConcurrency != DefaultFetchConcurrency {
		t.Errorf("FetchConcurrency = %d, want default", cfg.FetchConcurrency)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	if os.Getenv("APPDATA") != "" {
		t.Skip("windows-style environment")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := DefaultConfigDir()
	if filepath.Base(dir) != "prtree" {
		t.Errorf("DefaultConfigDir() = %q, want .../prtree", dir)
	}
	if TreeCacheDir() != filepath.Join(dir, "trees") {
		t.Errorf("TreeCacheDir() = %q", TreeCacheDir())
	}
}
