package inventory

import (
	"strconv"

	"github.com/pfassina/labtracker/internal/theme"
)

// Allocator hands out the identity of new groups. Next* only peek; the
// cursors move when the caller commits with Advance* after a group was
// actually created.
type Allocator struct {
	palette     []string
	colorIndex  int
	groupNumber int
}

// NewAllocator returns an allocator over palette, or the default group
// palette when palette is empty.
func NewAllocator(palette []string) *Allocator {
	if len(palette) == 0 {
		palette = theme.Palette()
	}
	return &Allocator{palette: palette, groupNumber: 1}
}

// NextColor returns the color the next group will get.
func (a *Allocator) NextColor() string {
	return a.palette[a.colorIndex]
}

// NextName returns the name the next group will get.
func (a *Allocator) NextName() string {
	return "Group" + strconv.Itoa(a.groupNumber)
}

// AdvanceColor moves the color cursor, wrapping around the palette.
func (a *Allocator) AdvanceColor() {
	a.colorIndex = (a.colorIndex + 1) % len(a.palette)
}

// AdvanceName moves the name cursor. It never wraps.
func (a *Allocator) AdvanceName() {
	a.groupNumber++
}

// Cursors returns the color index and group number.
func (a *Allocator) Cursors() (colorIndex, groupNumber int) {
	return a.colorIndex, a.groupNumber
}

// SetCursors restores persisted cursors, folding them into range.
func (a *Allocator) SetCursors(colorIndex, groupNumber int) {
	n := len(a.palette)
	a.colorIndex = ((colorIndex % n) + n) % n
	if groupNumber < 1 {
		groupNumber = 1
	}
	a.groupNumber = groupNumber
}

// Reset puts both cursors back at the start.
func (a *Allocator) Reset() {
	a.colorIndex = 0
	a.groupNumber = 1
}

// Palette returns the allocator's colors.
func (a *Allocator) Palette() []string {
	return append([]string(nil), a.palette...)
}
