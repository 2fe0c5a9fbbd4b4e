package cell

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit identifies one physical storage container.
type Unit int

const (
	Left Unit = iota
	Middle
	Main
)

// Units lists every unit in display order.
var Units = []Unit{Left, Middle, Main}

func (u Unit) String() string {
	switch u {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Main:
		return "main"
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	return u >= Left && u <= Main
}

// ParseUnit converts the string form of a unit back to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "left":
		return Left, nil
	case "middle":
		return Middle, nil
	case "main":
		return Main, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// Key addresses a single cell across all units.
type Key struct {
	Unit Unit
	Row  int
	Col  int
}

// NewKey is shorthand for Key{unit, row, col}.
func NewKey(unit Unit, row, col int) Key {
	return Key{Unit: unit, Row: row, Col: col}
}

// String returns the "{unit}-{row}-{col}" form.
func (k Key) String() string {
	return k.Unit.String() + "-" + strconv.Itoa(k.Row) + "-" + strconv.Itoa(k.Col)
}

// ParseKey parses the "{unit}-{row}-{col}" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("parse cell key %q: want unit-row-col", s)
	}
	unit, err := ParseUnit(parts[0])
	if err != nil {
		return Key{}, fmt.Errorf("parse cell key %q: %w", s, err)
	}
	row, err := parseIndex(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("parse cell key %q: row: %w", s, err)
	}
	col, err := parseIndex(parts[2])
	if err != nil {
		return Key{}, fmt.Errorf("parse cell key %q: col: %w", s, err)
	}
	return Key{Unit: unit, Row: row, Col: col}, nil
}

// parseIndex accepts only canonical non-negative decimals so that
// ParseKey(k.String()) == k and every accepted string round-trips.
func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty index")
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("leading zero in %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid index %q", s)
		}
	}
	return strconv.Atoi(s)
}

// Less orders keys by unit, then column, then row.
func Less(a, b Key) bool {
	if a.Unit != b.Unit {
		return a.Unit < b.Unit
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.Row < b.Row
}

// MarshalText implements encoding.TextMarshaler so keys can be used as
// JSON/YAML map keys.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
