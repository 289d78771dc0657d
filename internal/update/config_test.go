package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.StoreKind != StoreSQLite || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ResolvedStorePath() != ".tasklist.db" {
		t.Fatalf("unexpected default store path: %q", cfg.ResolvedStorePath())
	}
	cfg.StoreKind = StoreFile
	if cfg.ResolvedStorePath() != ".tasklist.json" {
		t.Fatalf("unexpected file store path: %q", cfg.ResolvedStorePath())
	}
	cfg.StoreKind = StoreMemory
	if cfg.ResolvedStorePath() != "" {
		t.Fatalf("memory store should have no path: %q", cfg.ResolvedStorePath())
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKLIST_STORE", "FILE")
	t.Setenv("TASKLIST_STORE_PATH", "state/todos.json")
	t.Setenv("TASKLIST_LOG_LEVEL", "debug")
	t.Setenv("TASKLIST_LOG_FILE", "tasklist.log")
	t.Setenv("TASKLIST_COLOR_SCHEME", "dark")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	want := RuntimeConfig{
		StoreKind:   StoreFile,
		StorePath:   "state/todos.json",
		LogLevel:    "debug",
		LogFile:     "tasklist.log",
		ColorScheme: "dark",
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestRuntimeConfigFromEnvIgnoresUnknownStore(t *testing.T) {
	t.Setenv("TASKLIST_STORE", "redis")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.StoreKind != StoreSQLite {
		t.Fatalf("unknown store kind should be ignored, got %q", cfg.StoreKind)
	}
}

func TestRuntimeConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	body := `
[store]
kind = "memory"

[log]
level = "info"

[ui]
color_scheme = "light"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreKind != StoreMemory || cfg.LogLevel != "info" || cfg.ColorScheme != "light" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogFile != "" || cfg.StorePath != "" {
		t.Fatalf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), filepath.Join(dir, "missing.toml"))
	if err != nil || cfg != DefaultRuntimeConfig() {
		t.Fatalf("missing file should keep defaults, got %+v err=%v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[store\nkind ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), bad); err == nil {
		t.Fatal("expected parse error")
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[store]\nkind = \"redis\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), unknown); err == nil {
		t.Fatal("expected unknown store kind error")
	}
}

func TestLoadRuntimeConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	if err := os.WriteFile(path, []byte("[store]\nkind = \"file\"\npath = \"from-file.json\"\n[log]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKLIST_CONFIG", path)
	t.Setenv("TASKLIST_LOG_LEVEL", "error")

	cfg, err := LoadRuntimeConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreKind != StoreFile || cfg.StorePath != "from-file.json" {
		t.Fatalf("file layer not applied: %+v", cfg)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env should override file, got %q", cfg.LogLevel)
	}
}
