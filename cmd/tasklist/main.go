package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/theme"
	"github.com/sandeepkv93/tasklist/internal/todo"
	"github.com/sandeepkv93/tasklist/internal/update"
)

func main() {
	os.Exit(run())
}

// run owns every deferred close so they all happen before main exits.
func run() int {
	_ = godotenv.Load()

	cfg, cfgErr := loadConfig(os.Args[1:])
	if errors.Is(cfgErr, flag.ErrHelp) {
		return 0
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("config ignored", "err", cfgErr)
	}

	backend, closeBackend := openBackend(cfg, logger)
	defer closeBackend()

	store := storage.NewStore(backend, storage.WithLogger(logger))
	repo := todo.New(store)
	themes := theme.New(store, theme.TerminalPreference(cfg.ColorScheme))
	logger.Debug("started", "store", cfg.StoreKind, "tasks", len(repo.Snapshot()), "theme", themes.Current())

	m := update.NewModel(repo, themes)
	defer m.Close()
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program failed", "err", err)
		fmt.Fprintf(os.Stderr, "tasklist failed: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers defaults, the TOML file, the environment and finally the
// command line flags.
func loadConfig(args []string) (update.RuntimeConfig, error) {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	store := fs.String("store", "", "store kind: sqlite, file or memory")
	path := fs.String("path", "", "store path")
	if err := fs.Parse(args); err != nil {
		return update.DefaultRuntimeConfig(), err
	}

	cfg, err := update.LoadRuntimeConfig(*configPath)
	if *store != "" {
		if k, ok := update.ParseStoreKind(*store); ok {
			cfg.StoreKind = k
		} else if err == nil {
			err = fmt.Errorf("config: unknown store kind %q", *store)
		}
	}
	if *path != "" {
		cfg.StorePath = *path
	}
	return cfg, err
}
