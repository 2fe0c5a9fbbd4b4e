package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/persist"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	DataDir       *string               `toml:"data_dir"`
	Backend       *string               `toml:"backend"`
	Theme         *string               `toml:"theme"`
	Listen        *string               `toml:"listen"`
	LeaderKey     *string               `toml:"leader_key"`
	LeaderTimeout *int                  `toml:"leader_timeout"`
	ToastDuration *int                  `toml:"toast_duration"`
	Watch         *bool                 `toml:"watch"`
	LogLevel      *string               `toml:"log_level"`
	Layout        map[string]unitConfig `toml:"layout,omitempty"`
}

type unitConfig struct {
	Name       *string `toml:"name"`
	Rows       *int    `toml:"rows"`
	Columns    *int    `toml:"columns"`
	ColumnRows []int   `toml:"column_rows"`
}

// ConfigDir returns the labtracker config directory, respecting
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "labtracker")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "labtracker")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	data, err := os.ReadFile(ConfigPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse %s: %w", ConfigPath(), err)
	}
	return true, fc.merge(cfg)
}

func (fc fileConfig) merge(cfg *Config) error {
	if fc.DataDir != nil {
		cfg.DataDir = ExpandHome(*fc.DataDir)
	}
	if fc.Backend != nil {
		kind, err := persist.ParseKind(*fc.Backend)
		if err != nil {
			return err
		}
		cfg.Backend = kind
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.LeaderKey != nil {
		cfg.LeaderKey = *fc.LeaderKey
	}
	if fc.LeaderTimeout != nil {
		cfg.LeaderTimeout = *fc.LeaderTimeout
	}
	if fc.ToastDuration != nil {
		cfg.ToastDuration = *fc.ToastDuration
	}
	if fc.Watch != nil {
		cfg.Watch = *fc.Watch
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}

	for name, uc := range fc.Layout {
		id, err := cell.ParseUnit(name)
		if err != nil {
			return fmt.Errorf("layout.%s: %w", name, err)
		}
		u, _ := cfg.Layout.Unit(id)
		u.ID = id
		if uc.Name != nil {
			u.Name = *uc.Name
		}
		if uc.Rows != nil {
			u.Rows = *uc.Rows
		}
		if uc.Columns != nil {
			u.Columns = *uc.Columns
		}
		if uc.ColumnRows != nil {
			u.ColumnRows = uc.ColumnRows
		} else if uc.Rows != nil {
			// A plain rows setting turns a hotel into a regular grid.
			u.ColumnRows = nil
		}
		cfg.Layout = cfg.Layout.WithUnit(u)
	}
	return cfg.Layout.Validate()
}

// SaveFile writes a minimal config.toml with the given data directory and
// backend.
func SaveFile(dataDir string, backend persist.Kind) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := dataDir
	if home != "" && strings.HasPrefix(dataDir, home+string(os.PathSeparator)) {
		display = "~" + dataDir[len(home):]
	}

	kind := string(backend)
	fc := fileConfig{DataDir: &display, Backend: &kind}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
