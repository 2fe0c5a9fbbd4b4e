package layout

import (
	"fmt"

	"github.com/pfassina/labtracker/internal/cell"
)

// Unit describes the grid geometry of one storage unit. A regular unit has
// Rows rows in each of its Columns columns; a hotel unit sets ColumnRows
// instead, one row count per column.
type Unit struct {
	ID         cell.Unit
	Name       string
	Rows       int
	Columns    int
	ColumnRows []int
}

// Hotel reports whether the unit has irregular per-column heights.
func (u Unit) Hotel() bool {
	return len(u.ColumnRows) > 0
}

// RowsIn returns the number of rows in the given column.
func (u Unit) RowsIn(col int) int {
	if col < 0 || col >= u.Columns {
		return 0
	}
	if u.Hotel() {
		if col >= len(u.ColumnRows) {
			return 0
		}
		return u.ColumnRows[col]
	}
	return u.Rows
}

// MaxRows returns the height of the tallest column.
func (u Unit) MaxRows() int {
	if !u.Hotel() {
		return u.Rows
	}
	max := 0
	for c := 0; c < u.Columns; c++ {
		if n := u.RowsIn(c); n > max {
			max = n
		}
	}
	return max
}

// Contains reports whether row/col addresses a slot of the unit.
func (u Unit) Contains(row, col int) bool {
	return row >= 0 && row < u.RowsIn(col)
}

// Size returns the number of slots in the unit.
func (u Unit) Size() int {
	n := 0
	for c := 0; c < u.Columns; c++ {
		n += u.RowsIn(c)
	}
	return n
}

// Keys returns every key of the unit. Regular units are listed row by row,
// hotel units column by column.
func (u Unit) Keys() []cell.Key {
	keys := make([]cell.Key, 0, u.Size())
	if u.Hotel() {
		for c := 0; c < u.Columns; c++ {
			for r := 0; r < u.RowsIn(c); r++ {
				keys = append(keys, cell.NewKey(u.ID, r, c))
			}
		}
		return keys
	}
	for r := 0; r < u.Rows; r++ {
		for c := 0; c < u.Columns; c++ {
			keys = append(keys, cell.NewKey(u.ID, r, c))
		}
	}
	return keys
}

// Validate checks the geometry for obvious mistakes.
func (u Unit) Validate() error {
	if !u.ID.Valid() {
		return fmt.Errorf("layout: invalid unit %d", u.ID)
	}
	if u.Columns <= 0 {
		return fmt.Errorf("layout %s: columns must be positive", u.ID)
	}
	if u.Hotel() {
		if len(u.ColumnRows) != u.Columns {
			return fmt.Errorf("layout %s: %d column_rows for %d columns", u.ID, len(u.ColumnRows), u.Columns)
		}
		for i, n := range u.ColumnRows {
			if n < 0 {
				return fmt.Errorf("layout %s: column %d has negative rows", u.ID, i)
			}
		}
		return nil
	}
	if u.Rows <= 0 {
		return fmt.Errorf("layout %s: rows must be positive", u.ID)
	}
	return nil
}

// Layout is the geometry of every unit.
type Layout struct {
	Units []Unit
}

// Default returns the geometry of the three lab cytomats.
func Default() Layout {
	return Layout{Units: []Unit{
		{ID: cell.Left, Name: "Cytomat5", Rows: 21, Columns: 5},
		{ID: cell.Middle, Name: "Cytomat2", Rows: 7, Columns: 2},
		{ID: cell.Main, Name: "Cytomat10 Hotel", Columns: 10, ColumnRows: []int{10, 7, 7, 7, 7, 7, 10, 21, 21, 21}},
	}}
}

// Unit returns the geometry of the given unit.
func (l Layout) Unit(id cell.Unit) (Unit, bool) {
	for _, u := range l.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// Contains reports whether k addresses a slot that exists.
func (l Layout) Contains(k cell.Key) bool {
	u, ok := l.Unit(k.Unit)
	if !ok {
		return false
	}
	return u.Contains(k.Row, k.Col)
}

// Keys returns every valid key, unit by unit.
func (l Layout) Keys() []cell.Key {
	var keys []cell.Key
	for _, u := range l.Units {
		keys = append(keys, u.Keys()...)
	}
	return keys
}

// Size returns the total number of slots.
func (l Layout) Size() int {
	n := 0
	for _, u := range l.Units {
		n += u.Size()
	}
	return n
}

// Validate checks every unit and rejects duplicates.
func (l Layout) Validate() error {
	seen := map[cell.Unit]bool{}
	for _, u := range l.Units {
		if err := u.Validate(); err != nil {
			return err
		}
		if seen[u.ID] {
			return fmt.Errorf("layout: unit %s defined twice", u.ID)
		}
		seen[u.ID] = true
	}
	return nil
}

// WithUnit returns a copy of l with u replacing the unit of the same ID.
func (l Layout) WithUnit(u Unit) Layout {
	units := make([]Unit, 0, len(l.Units))
	replaced := false
	for _, cur := range l.Units {
		if cur.ID == u.ID {
			units = append(units, u)
			replaced = true
			continue
		}
		units = append(units, cur)
	}
	if !replaced {
		units = append(units, u)
	}
	return Layout{Units: units}
}
