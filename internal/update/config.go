package update

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreFile   StoreKind = "file"
	StoreMemory StoreKind = "memory"
)

const (
	defaultSQLitePath = ".tasklist.db"
	defaultFilePath   = ".tasklist.json"
)

func ParseStoreKind(raw string) (StoreKind, bool) {
	switch k := StoreKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case StoreSQLite, StoreFile, StoreMemory:
		return k, true
	default:
		return "", false
	}
}

type RuntimeConfig struct {
	StoreKind StoreKind
	// StorePath empty means the default path for StoreKind.
	StorePath   string
	LogLevel    string
	LogFile     string
	ColorScheme string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StoreKind: StoreSQLite,
		LogLevel:  "warn",
	}
}

func (c RuntimeConfig) ResolvedStorePath() string {
	if p := strings.TrimSpace(c.StorePath); p != "" {
		return p
	}
	switch c.StoreKind {
	case StoreFile:
		return defaultFilePath
	case StoreMemory:
		return ""
	default:
		return defaultSQLitePath
	}
}

type fileConfig struct {
	Store struct {
		Kind string `toml:"kind"`
		Path string `toml:"path"`
	} `toml:"store"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	UI struct {
		ColorScheme string `toml:"color_scheme"`
	} `toml:"ui"`
}

// RuntimeConfigFromFile overlays the TOML file at path onto base. A missing
// file leaves base untouched.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	if fc.Store.Kind != "" {
		k, ok := ParseStoreKind(fc.Store.Kind)
		if !ok {
			return base, fmt.Errorf("config: unknown store kind %q", fc.Store.Kind)
		}
		cfg.StoreKind = k
	}
	if v := strings.TrimSpace(fc.Store.Path); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(fc.Log.Level); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(fc.Log.File); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(fc.UI.ColorScheme); v != "" {
		cfg.ColorScheme = v
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnv("TASKLIST_STORE"); ok {
		if k, valid := ParseStoreKind(v); valid {
			cfg.StoreKind = k
		}
	}
	if v, ok := getEnv("TASKLIST_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if v, ok := getEnv("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnv("TASKLIST_COLOR_SCHEME"); ok {
		cfg.ColorScheme = v
	}
	return cfg
}

// LoadRuntimeConfig layers defaults, the config file and the environment.
// An empty path falls back to TASKLIST_CONFIG.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	if strings.TrimSpace(path) == "" {
		path, _ = getEnv("TASKLIST_CONFIG")
	}
	cfg, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), path)
	if err != nil {
		return RuntimeConfigFromEnv(DefaultRuntimeConfig()), err
	}
	return RuntimeConfigFromEnv(cfg), nil
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
