package config

import (
	"os"
	"path/filepath"

	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/persist"
	"github.com/pfassina/labtracker/internal/theme"
)

type Config struct {
	DataDir       string
	Backend       persist.Kind
	Theme         string
	Listen        string
	LeaderKey     string
	LeaderTimeout int // milliseconds
	ToastDuration int // milliseconds
	Watch         bool
	LogLevel      string
	GroupsWidth   int
	InfoWidth     int
	ShowGroups    bool
	ShowInfo      bool
	Layout        layout.Layout
}

func Default() Config {
	return Config{
		DataDir:       DefaultDataDir(),
		Backend:       persist.KindSQLite,
		Theme:         theme.DefaultName,
		Listen:        ":2222",
		LeaderKey:     " ",
		LeaderTimeout: 500,
		ToastDuration: 4000,
		Watch:         true,
		LogLevel:      "info",
		GroupsWidth:   24,
		InfoWidth:     30,
		ShowGroups:    true,
		ShowInfo:      true,
		Layout:        layout.Default(),
	}
}

// DefaultDataDir returns the labtracker data directory, respecting
// XDG_DATA_HOME.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "labtracker")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "labtracker")
}
