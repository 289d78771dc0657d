package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/update"
)

// newLogger writes to cfg.LogFile, or nowhere: stdout belongs to the TUI.
func newLogger(cfg update.RuntimeConfig) (*log.Logger, func()) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil {
		level = log.WarnLevel
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if p := strings.TrimSpace(cfg.LogFile); p != "" {
		if dir := filepath.Dir(p); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		if f, ferr := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); ferr == nil {
			out = f
			closeFn = func() { _ = f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "tasklist",
	})
	if err != nil {
		logger.Warn("unknown log level", "level", cfg.LogLevel)
	}
	return logger, closeFn
}

// openBackend never fails: a store that cannot be opened degrades to memory
// so the session still works, it just is not kept.
func openBackend(cfg update.RuntimeConfig, logger *log.Logger) (storage.Backend, func()) {
	path := cfg.ResolvedStorePath()
	switch cfg.StoreKind {
	case update.StoreMemory:
		return storage.NewMemoryBackend(), func() {}
	case update.StoreFile:
		b, err := storage.NewFileBackend(path)
		if err != nil {
			logger.Warn("file store unavailable, running in memory", "path", path, "err", err)
			return storage.NewMemoryBackend(), func() {}
		}
		logger.Debug("file store opened", "path", b.Path())
		return b, func() {}
	default:
		b, err := storage.OpenSQLite(path)
		if err != nil {
			logger.Warn("sqlite store unavailable, running in memory", "path", path, "err", err)
			return storage.NewMemoryBackend(), func() {}
		}
		if at, ok, err := b.UpdatedAt(context.Background(), storage.KeyTasks); err == nil && ok {
			logger.Debug("sqlite store opened", "path", path, "tasks_saved", at.Format(time.RFC3339))
		} else {
			logger.Debug("sqlite store opened", "path", path)
		}
		closed := false
		return b, func() {
			if closed {
				return
			}
			closed = true
			if err := b.Close(); err != nil {
				logger.Warn("closing sqlite store", "err", err)
			}
		}
	}
}
