package layout

import (
	"testing"

	"github.com/pfassina/labtracker/internal/cell"
)

func TestDefaultSizes(t *testing.T) {
	l := Default()
	if err := l.Validate(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		unit cell.Unit
		want int
	}{
		{cell.Left, 105},
		{cell.Middle, 14},
		{cell.Main, 118},
	}
	for _, tt := range tests {
		u, ok := l.Unit(tt.unit)
		if !ok {
			t.Fatalf("unit %s missing", tt.unit)
		}
		if got := u.Size(); got != tt.want {
			t.Errorf("%s size = %d, want %d", tt.unit, got, tt.want)
		}
	}
	if got := len(l.Keys()); got != l.Size() {
		t.Errorf("len(Keys()) = %d, want %d", got, l.Size())
	}
}

func TestHotelContains(t *testing.T) {
	main, _ := Default().Unit(cell.Main)

	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{9, 0, true},
		{10, 0, false},
		{6, 1, true},
		{7, 1, false},
		{20, 9, true},
		{21, 9, false},
		{0, 10, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		if got := main.Contains(tt.row, tt.col); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
	if main.MaxRows() != 21 {
		t.Errorf("MaxRows() = %d, want 21", main.MaxRows())
	}
}

func TestKeysAreUnique(t *testing.T) {
	seen := map[cell.Key]bool{}
	for _, k := range Default().Keys() {
		if seen[k] {
			t.Fatalf("duplicate key %s", k)
		}
		seen[k] = true
		if !Default().Contains(k) {
			t.Errorf("Keys() produced %s which Contains rejects", k)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		l    Layout
		ok   bool
	}{
		{"default", Default(), true},
		{"zero columns", Layout{Units: []Unit{{ID: cell.Left, Rows: 3}}}, false},
		{"zero rows", Layout{Units: []Unit{{ID: cell.Left, Columns: 3}}}, false},
		{"hotel mismatch", Layout{Units: []Unit{{ID: cell.Main, Columns: 3, ColumnRows: []int{1, 2}}}}, false},
		{"duplicate", Layout{Units: []Unit{{ID: cell.Left, Rows: 1, Columns: 1}, {ID: cell.Left, Rows: 1, Columns: 1}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.l.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestWithUnit(t *testing.T) {
	l := Default().WithUnit(Unit{ID: cell.Middle, Name: "Small", Rows: 2, Columns: 2})
	u, _ := l.Unit(cell.Middle)
	if u.Name != "Small" || u.Size() != 4 {
		t.Errorf("WithUnit did not replace middle: %+v", u)
	}
	if len(l.Units) != 3 {
		t.Errorf("len(Units) = %d, want 3", len(l.Units))
	}
}
