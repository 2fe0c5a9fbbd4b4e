package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/theme"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestGrid(t *testing.T) (Grid, *inventory.Inventory, *inventory.Selection) {
	t.Helper()
	inv := inventory.New()
	sel := &inventory.Selection{}
	g := NewGrid(inv, layout.Default(), sel)
	th := theme.DefaultTheme()
	g.SetTheme(&th)
	g.SetSize(200, 30)
	return g, inv, sel
}

func press(g Grid, msgs ...tea.KeyMsg) Grid {
	for _, m := range msgs {
		g, _ = g.Update(m)
	}
	return g
}

func TestGrid_MoveAcrossUnits(t *testing.T) {
	g, _, _ := newTestGrid(t)

	g = press(g, runes("l"), runes("l"), runes("l"), runes("l"))
	if got := g.Cursor().String(); got != "left-0-4" {
		t.Fatalf("cursor = %s, want left-0-4", got)
	}
	g = press(g, runes("l"))
	if got := g.Cursor().String(); got != "middle-0-0" {
		t.Fatalf("cursor = %s, want middle-0-0", got)
	}
	g = press(g, runes("h"))
	if got := g.Cursor().String(); got != "left-0-4" {
		t.Fatalf("cursor = %s, want left-0-4", got)
	}
	g = press(g, tea.KeyMsg{Type: tea.KeyHome}, runes("h"))
	if got := g.Cursor().String(); got != "left-0-0" {
		t.Errorf("cursor = %s, want left-0-0", got)
	}
}

func TestGrid_HotelClampsRow(t *testing.T) {
	g, _, _ := newTestGrid(t)
	if !g.SetCursor(cell.NewKey(cell.Main, 20, 9)) {
		t.Fatal("SetCursor rejected a valid key")
	}

	g = press(g, runes("h"), runes("h"))
	if got := g.Cursor().String(); got != "main-20-7" {
		t.Fatalf("cursor = %s, want main-20-7", got)
	}
	g = press(g, runes("h"))
	if got := g.Cursor().String(); got != "main-9-6" {
		t.Errorf("cursor = %s, want main-9-6", got)
	}
}

func TestGrid_DownStopsAtLastRow(t *testing.T) {
	g, _, _ := newTestGrid(t)
	g.SetCursor(cell.NewKey(cell.Middle, 6, 0))

	g = press(g, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	if got := g.Cursor().String(); got != "middle-6-0" {
		t.Errorf("cursor = %s, want middle-6-0", got)
	}
	g = press(g, runes("k"))
	if got := g.Cursor().String(); got != "middle-5-0" {
		t.Errorf("cursor = %s, want middle-5-0", got)
	}
}

func TestGrid_SetCursorRejectsOutside(t *testing.T) {
	g, _, _ := newTestGrid(t)
	if g.SetCursor(cell.NewKey(cell.Main, 15, 0)) {
		t.Error("main-15-0 is outside the hotel's first column")
	}
	if got := g.Cursor().String(); got != "left-0-0" {
		t.Errorf("cursor moved to %s", got)
	}
}

func TestGrid_TabCyclesUnits(t *testing.T) {
	g, _, _ := newTestGrid(t)
	g.SetCursor(cell.NewKey(cell.Left, 3, 4))

	g = press(g, tea.KeyMsg{Type: tea.KeyTab})
	if got := g.Cursor().String(); got != "middle-3-1" {
		t.Fatalf("cursor = %s, want middle-3-1", got)
	}
	g = press(g, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if got := g.Cursor().Unit; got != cell.Left {
		t.Errorf("unit = %s after a full cycle, want left", got)
	}
	g = press(g, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := g.Cursor().Unit; got != cell.Main {
		t.Errorf("unit = %s after shift+tab, want main", got)
	}
}

func TestGrid_ActionKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want GridAction
	}{
		{runes("s"), ActSelect},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActEdit},
		{runes("L"), ActLink},
		{runes("u"), ActUnlink},
		{runes("x"), ActErase},
		{runes("o"), ActOutFridge},
		{runes("G"), ActSelectGroup},
		{runes("D"), ActDeleteGroup},
		{runes("y"), ActYank},
		{tea.KeyMsg{Type: tea.KeyEsc}, ActClear},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			g, _, _ := newTestGrid(t)
			g.SetCursor(cell.NewKey(cell.Middle, 2, 1))
			_, cmd := g.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			msg, ok := cmd().(GridActionMsg)
			if !ok {
				t.Fatalf("cmd() = %T, want GridActionMsg", cmd())
			}
			if msg.Action != tt.want || msg.Key.String() != "middle-2-1" {
				t.Errorf("msg = %+v", msg)
			}
		})
	}
}

func TestGrid_UnfocusedIgnoresKeys(t *testing.T) {
	g, _, _ := newTestGrid(t)
	g.SetFocused(false)
	g, cmd := g.Update(runes("l"))
	if cmd != nil || g.Cursor().String() != "left-0-0" {
		t.Error("unfocused grid should ignore keys")
	}
}

func TestGrid_Scroll(t *testing.T) {
	g, _, _ := newTestGrid(t)
	g.SetSize(200, 6)

	g.SetCursor(cell.NewKey(cell.Left, 10, 0))
	if g.offset != 6 {
		t.Errorf("offset = %d, want 6", g.offset)
	}
	g = press(g, runes("k"), runes("k"), runes("k"), runes("k"), runes("k"))
	if g.offset != 5 {
		t.Errorf("offset = %d after scrolling up, want 5", g.offset)
	}
}

func TestGrid_CellWidth(t *testing.T) {
	g, _, _ := newTestGrid(t)
	if w := g.CellWidth(); w != 10 {
		t.Errorf("CellWidth at 200 cols = %d, want 10", w)
	}
	g.SetSize(20, 30)
	if w := g.CellWidth(); w != minCellWidth {
		t.Errorf("CellWidth at 20 cols = %d, want %d", w, minCellWidth)
	}
}

func TestGrid_ViewShowsUnitsAndLabels(t *testing.T) {
	g, inv, _ := newTestGrid(t)
	inv.SetText(cell.NewKey(cell.Left, 0, 0), "Alpha")
	inv.SetText(cell.NewKey(cell.Main, 0, 9), "Omega")

	out := g.View()
	for _, want := range []string{"Cytomat5", "Cytomat2", "Cytomat10", "Alpha", "Omega"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGrid_Context(t *testing.T) {
	g, inv, sel := newTestGrid(t)
	a, b := cell.NewKey(cell.Left, 0, 0), cell.NewKey(cell.Left, 0, 1)
	blank := cell.NewKey(cell.Left, 5, 0)
	inv.SetText(a, "A")
	inv.SetText(b, "B")
	sel.Replace(a, b)
	inv.Link(sel)

	records := inv.Records()
	cur := g.Cursor() // left-0-0
	ctx := g.Context(b, records[b], cur, records[a])
	if !ctx.GroupHover || ctx.Hovered {
		t.Errorf("ctx for the other group member = %+v", ctx)
	}

	sel.LinkMode = true
	sel.Replace(a)
	if !g.Context(blank, cell.Empty(), cur, records[a]).Disabled {
		t.Error("blank cell should be disabled in link mode")
	}

	sel.Reset()
	sel.GroupMode = true
	sel.Group = records[a].GroupName
	if !g.Context(b, records[b], cur, records[a]).SelectedGroup {
		t.Error("member of the picked group should be marked")
	}
}
