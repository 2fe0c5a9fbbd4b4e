package cli

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/logging"
	"github.com/pfassina/labtracker/internal/persist"
)

// options are the persistent flags shared by every command.
type options struct {
	dataDir  string
	backend  string
	theme    string
	logLevel string
}

func (o *options) addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.dataDir, "data-dir", "", "directory holding the inventory (default from config)")
	f.StringVar(&o.backend, "backend", "", "storage backend: sqlite, json or diskv")
	f.StringVar(&o.theme, "theme", "", "color theme")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// load reads config.toml and applies the flags the user set. It reports
// whether the config file existed.
func (o *options) load(cmd *cobra.Command) (config.Config, bool, error) {
	cfg := config.Default()
	existed, err := config.LoadFile(&cfg)
	if err != nil {
		return cfg, existed, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = config.ExpandHome(o.dataDir)
	}
	if flags.Changed("backend") {
		kind, err := persist.ParseKind(o.backend)
		if err != nil {
			return cfg, existed, err
		}
		cfg.Backend = kind
	}
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg, existed, nil
}

// stderrLogger is the logger of the one-shot commands.
func stderrLogger(cmd *cobra.Command, cfg config.Config) (*log.Logger, error) {
	level := cfg.LogLevel
	if !cmd.Flags().Changed("log-level") {
		level = "warn"
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// env is an opened inventory with its backend.
type env struct {
	cfg     config.Config
	backend persist.Backend
	watcher *persist.Watcher
	inv     *inventory.Inventory
	logger  *log.Logger

	mu      sync.Mutex
	onError func(error)
}

// openEnv opens the configured backend and seeds an inventory from it.
// With watch set, json and diskv stores are watched for edits made by
// other processes; call start to begin watching.
func openEnv(cfg config.Config, logger *log.Logger, watch bool) (*env, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	backend, err := persist.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	blob, err := backend.Load()
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("load %s: %w", backend.Path(), err)
	}

	e := &env{cfg: cfg, backend: backend, logger: logger}

	var saver inventory.Saver = backend
	if watch {
		w, err := persist.NewWatcher(backend, e.reload, e.storageError)
		switch {
		case errors.Is(err, persist.ErrNotWatchable):
			logger.Debug("backend is not watched", "backend", cfg.Backend)
		case err != nil:
			_ = backend.Close()
			return nil, fmt.Errorf("watch %s: %w", backend.Path(), err)
		default:
			e.watcher = w
			saver = w
		}
	}

	e.inv = inventory.New(inventory.WithSaver(saver), inventory.WithLogger(logger), inventory.WithLayout(cfg.Layout))
	e.inv.Seed(blob)
	logger.Info("inventory opened", "backend", cfg.Backend, "path", backend.Path(), "cells", len(e.inv.Records()))
	return e, nil
}

func (e *env) reload(b *persist.Blob) {
	e.logger.Info("reloading changed inventory")
	e.inv.Reload(b)
}

func (e *env) storageError(err error) {
	e.logger.Error("storage", "err", err)
	e.mu.Lock()
	fn := e.onError
	e.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// setErrorHandler forwards watcher errors to fn in addition to the log.
func (e *env) setErrorHandler(fn func(error)) {
	e.mu.Lock()
	e.onError = fn
	e.mu.Unlock()
}

func (e *env) start() {
	if e.watcher != nil {
		go e.watcher.Start()
	}
}

// searcher returns the backend's label index, if it has one.
func (e *env) searcher() persist.Searcher {
	s, _ := e.backend.(persist.Searcher)
	return s
}

func (e *env) Close() error {
	if e.watcher != nil {
		if err := e.watcher.Stop(); err != nil {
			e.logger.Warn("stop watcher", "err", err)
		}
	}
	return e.backend.Close()
}

// withEnv runs fn against an unwatched inventory for one-shot commands.
func (o *options) withEnv(cmd *cobra.Command, fn func(e *env) error) error {
	cfg, _, err := o.load(cmd)
	if err != nil {
		return err
	}
	logger, err := stderrLogger(cmd, cfg)
	if err != nil {
		return err
	}
	e, err := openEnv(cfg, logger, false)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}
