package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()

	// Verify all fields are populated (non-empty).
	fields := []struct {
		name  string
		color lipgloss.Color
	}{
		{"Accent", th.Accent},
		{"Subtle", th.Subtle},
		{"Text", th.Text},
		{"Dim", th.Dim},
		{"Border", th.Border},
		{"StatusBg", th.StatusBg},
		{"StatusFg", th.StatusFg},
		{"Error", th.Error},
		{"NormalMode", th.NormalMode},
		{"LinkMode", th.LinkMode},
		{"GroupMode", th.GroupMode},
		{"CellSelected", th.CellSelected},
		{"CellRestored", th.CellRestored},
	}

	for _, f := range fields {
		if string(f.color) == "" {
			t.Errorf("DefaultTheme().%s is empty", f.name)
		}
	}
}

func TestGetUnknownFallsBack(t *testing.T) {
	if got := Get("solarized").Name; got != DefaultName {
		t.Errorf("Get(unknown).Name = %q, want %q", got, DefaultName)
	}
	for _, name := range Names() {
		if Get(name).Name != name {
			t.Errorf("Get(%q) returned %q", name, Get(name).Name)
		}
	}
}

func TestGroupPalette(t *testing.T) {
	if len(GroupPalette) != 30 {
		t.Fatalf("len(GroupPalette) = %d, want 30", len(GroupPalette))
	}
	seen := map[string]bool{}
	for i, c := range GroupPalette {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("palette[%d] = %q is not #RRGGBB", i, c)
		}
		if seen[c] {
			t.Errorf("palette[%d] = %q is duplicated", i, c)
		}
		seen[c] = true
	}
	if GroupPalette[0] != "#FFC928" {
		t.Errorf("first color = %q, want #FFC928", GroupPalette[0])
	}
}

func TestColorName(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FFC928", "cat1"},
		{"#C9C176", "cat10"},
		{"#A27B2B", "cat30"},
		{"#000000", ""},
	}
	for _, tt := range tests {
		if got := ColorName(tt.hex); got != tt.want {
			t.Errorf("ColorName(%q) = %q, want %q", tt.hex, got, tt.want)
		}
	}
}
