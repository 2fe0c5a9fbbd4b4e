package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		wantErr bool
	}{
		{"", false, false},
		{"info", false, false},
		{"debug", true, false},
		{"loud", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(&buf, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) err = %v", tt.level, err)
			}
			if err != nil {
				return
			}
			l.Debug("debug line")
			if got := strings.Contains(buf.String(), "debug line"); got != tt.debug {
				t.Errorf("debug logged = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("restored cells", "cells", 3)
	out := buf.String()
	if !strings.Contains(out, "restored cells") || !strings.Contains(out, "cells=3") {
		t.Errorf("output = %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	l, c, err := OpenFile(dir, "warn")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log file = %q", data)
	}
}
