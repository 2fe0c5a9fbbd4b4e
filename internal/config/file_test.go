package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/persist"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, "labtracker")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		input string
		want  string
	}{
		{"~/lab", filepath.Join(home, "lab")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("LoadFile should return false for missing file")
	}
}

func TestLoadFile_Partial(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/srv/data")
	writeConfig(t, `theme = "nord"`+"\n")

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true for existing file")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "nord")
	}
	// DataDir should remain the default since it wasn't in the file.
	if cfg.DataDir != filepath.Join("/srv/data", "labtracker") {
		t.Errorf("DataDir changed unexpectedly: %q", cfg.DataDir)
	}
	if cfg.Backend != persist.KindSQLite || cfg.ToastDuration != 4000 || !cfg.Watch {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFile_Full(t *testing.T) {
	writeConfig(t, `data_dir = "~/lab"
backend = "json"
theme = "gruvbox"
listen = ":2323"
leader_key = ","
leader_timeout = 300
toast_duration = 6000
watch = false
log_level = "debug"
`)

	cfg := Default()
	if _, err := LoadFile(&cfg); err != nil {
		t.Fatal(err)
	}

	home, _ := os.UserHomeDir()
	want := Config{
		DataDir:       filepath.Join(home, "lab"),
		Backend:       persist.KindJSON,
		Theme:         "gruvbox",
		Listen:        ":2323",
		LeaderKey:     ",",
		LeaderTimeout: 300,
		ToastDuration: 6000,
		Watch:         false,
		LogLevel:      "debug",
	}
	got := cfg
	if got.DataDir != want.DataDir || got.Backend != want.Backend || got.Theme != want.Theme ||
		got.Listen != want.Listen || got.LeaderKey != want.LeaderKey || got.LeaderTimeout != want.LeaderTimeout ||
		got.ToastDuration != want.ToastDuration || got.Watch != want.Watch || got.LogLevel != want.LogLevel {
		t.Errorf("cfg = %+v, want %+v", got, want)
	}
}

func TestLoadFile_Layout(t *testing.T) {
	writeConfig(t, `[layout.middle]
name = "Cytomat2 C"
rows = 9

[layout.main]
rows = 12
`)

	cfg := Default()
	if _, err := LoadFile(&cfg); err != nil {
		t.Fatal(err)
	}

	middle, _ := cfg.Layout.Unit(cell.Middle)
	if middle.Name != "Cytomat2 C" || middle.Rows != 9 || middle.Columns != 2 {
		t.Errorf("middle = %+v", middle)
	}
	main, _ := cfg.Layout.Unit(cell.Main)
	if main.Hotel() || main.Size() != 120 {
		t.Errorf("main = %+v, want a regular 12x10 grid", main)
	}
	left, _ := cfg.Layout.Unit(cell.Left)
	if left.Size() != 105 {
		t.Errorf("left changed: %+v", left)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"backend", `backend = "redis"`, "redis"},
		{"unit", "[layout.top]\nrows = 3\n", "layout.top"},
		{"geometry", "[layout.main]\ncolumns = 3\n", "column_rows"},
		{"syntax", `theme = `, "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content+"\n")
			cfg := Default()
			_, err := LoadFile(&cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, "lab-inventory")

	if err := SaveFile(dataDir, persist.KindDiskv); err != nil {
		t.Fatal(err)
	}

	// Verify the file was created and can be loaded back.
	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("config file should exist after SaveFile")
	}
	if cfg.DataDir != dataDir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dataDir)
	}
	if cfg.Backend != persist.KindDiskv {
		t.Errorf("Backend = %q, want diskv", cfg.Backend)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	want := filepath.Join(tmp, "labtracker")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "labtracker")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestDefaultKeybindsAreLeaderSequences(t *testing.T) {
	for _, kb := range DefaultKeybinds() {
		if !strings.HasPrefix(kb.Sequence, "Space ") || kb.Action == "" {
			t.Errorf("bad keybind %+v", kb)
		}
	}
}
