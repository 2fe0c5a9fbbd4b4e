package persist

import (
	"errors"

	"github.com/pfassina/labtracker/internal/cell"
)

// ErrNoState is returned by helpers that require a stored blob when the
// backend holds none.
var ErrNoState = errors.New("no stored state")

// Table maps the string form of a cell key to its record.
type Table map[string]cell.Record

// Blob is the composite state written on every mutation and read once at
// startup.
type Blob struct {
	LeftTable       Table `json:"leftTable" yaml:"leftTable"`
	MiddleTable     Table `json:"middleTable" yaml:"middleTable"`
	MainTable       Table `json:"mainTable" yaml:"mainTable"`
	NextColorIndex  int   `json:"nextColorIndex" yaml:"nextColorIndex"`
	NextGroupNumber int   `json:"nextGroupNumber" yaml:"nextGroupNumber"`
}

// NewBlob returns an empty blob with fresh cursors.
func NewBlob() Blob {
	return Blob{
		LeftTable:       Table{},
		MiddleTable:     Table{},
		MainTable:       Table{},
		NextGroupNumber: 1,
	}
}

// Table returns the table of unit u.
func (b *Blob) Table(u cell.Unit) Table {
	switch u {
	case cell.Left:
		return b.LeftTable
	case cell.Middle:
		return b.MiddleTable
	case cell.Main:
		return b.MainTable
	}
	return nil
}

// SetTable replaces the table of unit u.
func (b *Blob) SetTable(u cell.Unit, t Table) {
	switch u {
	case cell.Left:
		b.LeftTable = t
	case cell.Middle:
		b.MiddleTable = t
	case cell.Main:
		b.MainTable = t
	}
}

// Len returns the number of records across all tables.
func (b *Blob) Len() int {
	return len(b.LeftTable) + len(b.MiddleTable) + len(b.MainTable)
}
