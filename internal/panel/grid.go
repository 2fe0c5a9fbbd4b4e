package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/theme"
)

// GridAction is a cell-level request raised by the grid.
type GridAction int

const (
	ActSelect GridAction = iota
	ActEdit
	ActLink
	ActUnlink
	ActErase
	ActOutFridge
	ActSelectGroup
	ActUnlinkGroup
	ActDeleteGroup
	ActRenameGroup
	ActYank
	ActClear
)

// GridActionMsg is sent when a key on the grid asks for a cell action.
type GridActionMsg struct {
	Action GridAction
	Key    cell.Key
}

var gridKeys = map[string]GridAction{
	"s":     ActSelect,
	"enter": ActEdit,
	"i":     ActEdit,
	"L":     ActLink,
	"u":     ActUnlink,
	"x":     ActErase,
	"o":     ActOutFridge,
	"G":     ActSelectGroup,
	"U":     ActUnlinkGroup,
	"D":     ActDeleteGroup,
	"R":     ActRenameGroup,
	"y":     ActYank,
	"esc":   ActClear,
}

const (
	minCellWidth = 3
	maxCellWidth = 16
)

// Grid renders every storage unit side by side and owns the cursor.
type Grid struct {
	inv      *inventory.Inventory
	lay      layout.Layout
	sel      *inventory.Selection
	restored func(cell.Key) bool
	theme    *theme.Theme

	unit   int
	row    int
	col    int
	offset int

	width   int
	height  int
	focused bool
	loading bool

	editing    cell.Key
	hasEditing bool
}

func NewGrid(inv *inventory.Inventory, lay layout.Layout, sel *inventory.Selection) Grid {
	return Grid{
		inv:     inv,
		lay:     lay,
		sel:     sel,
		focused: true,
	}
}

func (g *Grid) SetTheme(th *theme.Theme) { g.theme = th }

// SetRestored installs the predicate used to highlight cells brought back
// by an undo.
func (g *Grid) SetRestored(fn func(cell.Key) bool) { g.restored = fn }

func (g *Grid) SetLoading(loading bool) { g.loading = loading }

// SetEditing marks k as the cell whose label is being edited.
func (g *Grid) SetEditing(k cell.Key) {
	g.editing = k
	g.hasEditing = true
}

func (g *Grid) ClearEditing() { g.hasEditing = false }

// Cursor returns the key under the cursor.
func (g Grid) Cursor() cell.Key {
	if len(g.lay.Units) == 0 {
		return cell.Key{}
	}
	return cell.NewKey(g.lay.Units[g.unit].ID, g.row, g.col)
}

// SetCursor moves the cursor to k when the layout holds it.
func (g *Grid) SetCursor(k cell.Key) bool {
	for i, u := range g.lay.Units {
		if u.ID == k.Unit && u.Contains(k.Row, k.Col) {
			g.unit, g.row, g.col = i, k.Row, k.Col
			g.scroll()
			return true
		}
	}
	return false
}

func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused || len(g.lay.Units) == 0 {
		return g, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch km.String() {
	case "h", "left":
		g.moveCol(-1)
	case "l", "right":
		g.moveCol(1)
	case "k", "up":
		if g.row > 0 {
			g.row--
		}
	case "j", "down":
		if g.row < g.current().RowsIn(g.col)-1 {
			g.row++
		}
	case "tab":
		g.switchUnit(1)
	case "shift+tab":
		g.switchUnit(-1)
	case "0", "home":
		g.col = 0
		g.clampRow()
	case "$", "end":
		g.col = g.current().Columns - 1
		g.clampRow()
	default:
		if a, ok := gridKeys[km.String()]; ok {
			k := g.Cursor()
			return g, func() tea.Msg { return GridActionMsg{Action: a, Key: k} }
		}
		return g, nil
	}
	g.scroll()
	return g, nil
}

func (g Grid) current() layout.Unit {
	return g.lay.Units[g.unit]
}

// moveCol steps one column, crossing into the neighbouring unit at the
// edges.
func (g *Grid) moveCol(d int) {
	col := g.col + d
	switch {
	case col < 0:
		if g.unit == 0 {
			return
		}
		g.unit--
		g.col = g.current().Columns - 1
	case col >= g.current().Columns:
		if g.unit == len(g.lay.Units)-1 {
			return
		}
		g.unit++
		g.col = 0
	default:
		g.col = col
	}
	g.clampRow()
}

func (g *Grid) switchUnit(d int) {
	n := len(g.lay.Units)
	g.unit = (g.unit + d + n) % n
	if g.col >= g.current().Columns {
		g.col = g.current().Columns - 1
	}
	g.clampRow()
}

func (g *Grid) clampRow() {
	if rows := g.current().RowsIn(g.col); g.row >= rows {
		g.row = rows - 1
	}
	if g.row < 0 {
		g.row = 0
	}
}

func (g *Grid) scroll() {
	visible := g.visibleRows()
	if g.row < g.offset {
		g.offset = g.row
	}
	if g.row >= g.offset+visible {
		g.offset = g.row - visible + 1
	}
}

// visibleRows is the number of cell rows that fit under the unit titles.
func (g Grid) visibleRows() int {
	if g.height <= 1 {
		return 1
	}
	return g.height - 1
}

// CellWidth returns the width of one cell for the current panel width.
func (g Grid) CellWidth() int {
	cols := 0
	for _, u := range g.lay.Units {
		cols += u.Columns
	}
	if cols == 0 {
		return minCellWidth
	}
	n := len(g.lay.Units)
	avail := g.width - 2*(n-1) - (cols - n)
	w := avail / cols
	return max(minCellWidth, min(maxCellWidth, w))
}

// Context computes the interaction context of k for rendering.
func (g Grid) Context(k cell.Key, r cell.Record, cur cell.Key, hover cell.Record) cell.Context {
	sel := g.sel
	return cell.Context{
		Hovered:       k == cur,
		Selected:      sel.Has(k),
		Renaming:      sel.Renaming && r.Linked && r.GroupName == sel.Group,
		Editing:       sel.Editing && g.hasEditing && k == g.editing,
		Loading:       g.loading,
		GroupHover:    k != cur && hover.Linked && r.Linked && r.GroupName == hover.GroupName,
		Disabled:      g.inv.LinkDisabled(sel, k),
		SelectedGroup: sel.GroupMode && r.Linked && r.GroupName == sel.Group,
	}
}

func (g Grid) View() string {
	if g.width == 0 || g.height == 0 || len(g.lay.Units) == 0 {
		return ""
	}

	records := g.inv.Records()
	cur := g.Cursor()
	hover := records[cur]
	w := g.CellWidth()

	blocks := make([]string, 0, 2*len(g.lay.Units))
	for i, u := range g.lay.Units {
		if i > 0 {
			blocks = append(blocks, "  ")
		}
		blocks = append(blocks, g.renderUnit(i, u, records, cur, hover, w))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (g Grid) renderUnit(idx int, u layout.Unit, records map[cell.Key]cell.Record, cur cell.Key, hover cell.Record, w int) string {
	th := g.theme
	unitWidth := u.Columns*w + u.Columns - 1

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Dim)
	if idx == g.unit {
		titleStyle = titleStyle.Foreground(th.Accent).Underline(true)
	}
	title := runewidth.Truncate(u.Name, unitWidth, "…")

	lines := []string{titleStyle.Render(title)}
	blank := strings.Repeat(" ", w)
	last := min(u.MaxRows(), g.offset+g.visibleRows())
	for r := g.offset; r < last; r++ {
		cells := make([]string, u.Columns)
		for c := 0; c < u.Columns; c++ {
			if r >= u.RowsIn(c) {
				cells[c] = blank
				continue
			}
			k := cell.NewKey(u.ID, r, c)
			rec, ok := records[k]
			if !ok {
				rec = cell.Empty()
			}
			cells[c] = g.renderCell(k, rec, g.Context(k, rec, cur, hover), w)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (g Grid) renderCell(k cell.Key, r cell.Record, ctx cell.Context, w int) string {
	label := r.Text
	if !r.HasContent() {
		label = "·"
	}
	text := runewidth.FillRight(runewidth.Truncate(label, w, "…"), w)
	p := cell.Present(r, ctx)
	restored := g.restored != nil && g.restored(k)
	return g.cellStyle(p, ctx.Hovered, restored).Render(text)
}

func (g Grid) cellStyle(p cell.Presentation, hovered, restored bool) lipgloss.Style {
	th := g.theme
	s := lipgloss.NewStyle().Foreground(th.Text).Background(th.CellRegular)

	switch p.State {
	case cell.StateEmpty:
		s = s.Foreground(th.Dim).Background(th.CellEmpty)
	case cell.StateLoading:
		s = s.Foreground(th.Subtle).Background(th.CellEmpty).Faint(true)
	}
	if p.Linked {
		s = s.Foreground(th.Bg).Background(lipgloss.Color(p.GroupColor))
	}

	switch p.State {
	case cell.StateHover, cell.StateRenaming:
		s = s.Bold(true).Underline(true)
		if !p.Linked {
			s = s.Background(th.CellHover)
		}
	case cell.StateSelected, cell.StateHoverSelected:
		s = s.Foreground(th.Bg).Background(th.CellSelected).Bold(true)
		if p.State == cell.StateHoverSelected {
			s = s.Underline(true)
		}
	case cell.StateEditing:
		s = s.Foreground(th.Bg).Background(th.Accent)
	case cell.StateEmpty:
		// An empty cell under the cursor still needs to show where it is.
		if hovered {
			s = s.Reverse(true)
		}
	}

	if p.GroupHover || p.IsSelectedGroup {
		s = s.Underline(true)
	}
	if p.IsSelectedGroup {
		s = s.Bold(true)
	}
	if p.OutFridge {
		s = s.Italic(true)
		if !p.Linked {
			s = s.Foreground(th.CellOut)
		}
	}
	if p.IsDisabled {
		s = s.Faint(true)
	}
	if restored {
		s = s.Foreground(th.Bg).Background(th.CellRestored)
	}
	return s
}

func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scroll()
}

func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}
