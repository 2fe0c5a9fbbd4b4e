package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/panel"
	"github.com/pfassina/labtracker/internal/session"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name                 string
		w, h                 int
		showGroups, showInfo bool
		wantGroups, wantInfo int
		wantGrid, wantHeight int
	}{
		{"all panels", 200, 40, true, true, 24, 30, 146, 39},
		{"no side panels", 200, 40, false, false, 0, 0, 200, 39},
		{"groups capped to a quarter", 80, 20, true, false, 20, 0, 60, 19},
		{"degenerate size", 0, 0, true, true, 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.w, tt.h, tt.showGroups, tt.showInfo, 24, 30)
			if l.GroupsWidth != tt.wantGroups || l.InfoWidth != tt.wantInfo ||
				l.GridWidth != tt.wantGrid || l.Height != tt.wantHeight {
				t.Errorf("ComputeLayout = %+v", l)
			}
		})
	}
}

func TestOverlayCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	got := strings.Split(overlayCenter(base, "ab", 10, 5), "\n")
	if got[2] != "....ab...." {
		t.Errorf("middle line = %q", got[2])
	}
	if got[0] != ".........." {
		t.Errorf("first line touched: %q", got[0])
	}
}

func key(unit cell.Unit, row, col int) cell.Key {
	return cell.NewKey(unit, row, col)
}

func newTestApp(t *testing.T, labels map[cell.Key]string) (*App, *inventory.Inventory) {
	t.Helper()
	inv := inventory.New()
	for k, text := range labels {
		inv.SetText(k, text)
	}
	a := New(config.Default(), Deps{
		Inventory: inv,
		Layout:    layout.Default(),
		Clipboard: func(string) error { return nil },
	})
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	return a, inv
}

func act(a *App, action panel.GridAction, k cell.Key) {
	a.Update(panel.GridActionMsg{Action: action, Key: k})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLinkFlowAndUndo(t *testing.T) {
	a1, a2 := key(cell.Left, 0, 0), key(cell.Left, 0, 1)
	a, inv := newTestApp(t, map[cell.Key]string{a1: "A", a2: "B"})

	act(a, panel.ActSelect, a1)
	act(a, panel.ActLink, a1)
	if !a.Selection().LinkMode {
		t.Fatal("expected link mode")
	}
	act(a, panel.ActSelect, a2)
	act(a, panel.ActLink, a1)

	if a.Selection().LinkMode || a.Selection().Len() != 0 {
		t.Errorf("link mode and selection should be cleared: %+v", a.Selection())
	}
	r1, r2 := inv.Get(a1), inv.Get(a2)
	if !r1.Linked || r1.GroupName != "Group1" || r2.GroupName != "Group1" || r1.GroupColor != r2.GroupColor {
		t.Fatalf("records after link: %+v %+v", r1, r2)
	}

	if !a.Undo() {
		t.Fatal("undo should run")
	}
	if r := inv.Get(a1); r.Linked || r.Text != "A" {
		t.Errorf("after undo = %+v", r)
	}
	if a.Undo() {
		t.Error("second undo should have nothing to do")
	}
}

func TestLinkMode_DisabledCell(t *testing.T) {
	a1, a2, blank := key(cell.Left, 0, 0), key(cell.Left, 0, 1), key(cell.Left, 0, 2)
	a, _ := newTestApp(t, map[cell.Key]string{a1: "A", a2: "B"})

	act(a, panel.ActSelect, a1)
	act(a, panel.ActLink, a1)
	act(a, panel.ActSelect, blank)

	if a.Selection().Has(blank) {
		t.Error("blank cell must not join a link")
	}
	if !strings.Contains(a.status.Error(), "cannot add") {
		t.Errorf("status error = %q", a.status.Error())
	}
}

func TestLinkCrossGroupAlerts(t *testing.T) {
	k := []cell.Key{key(cell.Left, 0, 0), key(cell.Left, 0, 1), key(cell.Left, 1, 0), key(cell.Left, 1, 1)}
	a, inv := newTestApp(t, map[cell.Key]string{k[0]: "A", k[1]: "B", k[2]: "C", k[3]: "D"})
	for _, pair := range [][]cell.Key{{k[0], k[1]}, {k[2], k[3]}} {
		var sel inventory.Selection
		sel.Replace(pair...)
		if _, v := inv.Link(&sel); v != inventory.LinkOK {
			t.Fatalf("seed link: %v", v)
		}
	}

	sel := a.Selection()
	sel.Replace(k[0], k[2])
	sel.LinkMode = true
	act(a, panel.ActLink, k[0])

	if !a.prompt.Alerting() {
		t.Fatal("cross-group link should raise an alert")
	}
	if sel.Len() != 0 || sel.LinkMode {
		t.Errorf("selection not cleared: %+v", sel)
	}
	if inv.Get(k[0]).GroupName != "Group1" || inv.Get(k[2]).GroupName != "Group2" {
		t.Error("groups must be untouched")
	}

	a.Update(panel.PromptCancelledMsg{})
	if a.prompt.Visible() {
		t.Error("alert should close")
	}
}

func TestEditFlow(t *testing.T) {
	k := key(cell.Middle, 2, 1)
	a, inv := newTestApp(t, nil)

	act(a, panel.ActEdit, k)
	if !a.prompt.Visible() || !a.Selection().Editing {
		t.Fatal("edit should open the prompt")
	}
	a.Update(panel.PromptResultMsg{Value: "Buffer A"})

	if got := inv.Get(k).Text; got != "Buffer A" {
		t.Errorf("text = %q", got)
	}
	if a.prompt.Visible() || a.Selection().Editing {
		t.Error("edit should be finished")
	}

	// A blank label erases the cell.
	act(a, panel.ActEdit, k)
	a.Update(panel.PromptResultMsg{Value: "  "})
	if inv.Get(k).HasContent() {
		t.Errorf("blank edit should erase, got %+v", inv.Get(k))
	}
}

func TestRenameGroupFlow(t *testing.T) {
	k := []cell.Key{key(cell.Left, 0, 0), key(cell.Left, 0, 1), key(cell.Left, 1, 0), key(cell.Left, 1, 1)}
	a, inv := newTestApp(t, map[cell.Key]string{k[0]: "A", k[1]: "B", k[2]: "C", k[3]: "D"})
	for _, pair := range [][]cell.Key{{k[0], k[1]}, {k[2], k[3]}} {
		var sel inventory.Selection
		sel.Replace(pair...)
		inv.Link(&sel)
	}

	a.Update(panel.GroupRenameMsg{Name: "Group1"})
	if !a.Selection().Renaming {
		t.Fatal("rename should be in progress")
	}

	a.Update(panel.PromptResultMsg{Value: "Group2"})
	if !a.prompt.Visible() || !a.Selection().Renaming {
		t.Fatal("taken name should keep the prompt open")
	}

	a.Update(panel.PromptResultMsg{Value: "Buffers"})
	if a.prompt.Visible() || a.Selection().Renaming {
		t.Error("rename should be finished")
	}
	if inv.Get(k[0]).GroupName != "Buffers" || inv.Get(k[1]).GroupName != "Buffers" {
		t.Errorf("rename not applied: %+v", inv.Get(k[0]))
	}
}

func TestDeleteGroupNeedsConfirmation(t *testing.T) {
	a1, a2 := key(cell.Main, 0, 0), key(cell.Main, 0, 1)
	a, inv := newTestApp(t, map[cell.Key]string{a1: "A", a2: "B"})
	var sel inventory.Selection
	sel.Replace(a1, a2)
	inv.Link(&sel)

	a.Update(panel.GroupDeleteMsg{Name: "Group1"})
	if !inv.Get(a1).HasContent() {
		t.Fatal("delete must wait for confirmation")
	}
	a.Update(panel.PromptCancelledMsg{})
	if !inv.Get(a1).HasContent() {
		t.Fatal("cancel must keep the group")
	}

	a.Update(panel.GroupDeleteMsg{Name: "Group1"})
	a.Update(panel.PromptResultMsg{Value: "yes"})
	if inv.Get(a1).HasContent() || inv.Get(a2).HasContent() {
		t.Error("group cells should be erased")
	}
	if _, ok := inv.Group("Group1"); ok {
		t.Error("group should be gone")
	}
}

func TestUnlinkTargetsCursor(t *testing.T) {
	a1, a2 := key(cell.Left, 0, 0), key(cell.Left, 0, 1)
	a, inv := newTestApp(t, map[cell.Key]string{a1: "A", a2: "B"})
	var sel inventory.Selection
	sel.Replace(a1, a2)
	inv.Link(&sel)

	a.grid.SetCursor(a1)
	act(a, panel.ActUnlink, a1)

	// A group of two dissolves entirely.
	if inv.Get(a1).Linked || inv.Get(a2).Linked {
		t.Error("group of two should dissolve")
	}
	if inv.Get(a1).Text != "A" {
		t.Error("unlink keeps labels")
	}
}

func TestSelectGroupTogglesGroupMode(t *testing.T) {
	a1, a2 := key(cell.Left, 0, 0), key(cell.Left, 0, 1)
	a, inv := newTestApp(t, map[cell.Key]string{a1: "A", a2: "B"})
	var sel inventory.Selection
	sel.Replace(a1, a2)
	inv.Link(&sel)

	act(a, panel.ActSelectGroup, a1)
	if s := a.Selection(); !s.GroupMode || s.Group != "Group1" {
		t.Fatalf("selection = %+v", s)
	}
	if a.targetGroup() != "Group1" {
		t.Error("group mode should target the selected group")
	}
	act(a, panel.ActSelectGroup, a1)
	if a.Selection().GroupMode {
		t.Error("selecting the active group again should leave group mode")
	}
}

func TestLeaderBindingsCoverKeybinds(t *testing.T) {
	a, _ := newTestApp(t, nil)
	for _, kb := range config.DefaultKeybinds() {
		seq := strings.Fields(kb.Sequence)[1:]
		if _, ok := a.lookupBinding(seq); !ok {
			t.Errorf("%s (%s) has no leader binding", kb.Sequence, kb.Action)
		}
	}
}

func TestLeaderTogglesPanels(t *testing.T) {
	a, _ := newTestApp(t, nil)
	if !a.showGroups {
		t.Fatal("groups panel should start visible")
	}
	for _, k := range []string{" ", "v", "g"} {
		a.Update(runes(k))
	}
	if a.showGroups {
		t.Error("Space v g should hide the groups panel")
	}
	if a.leader.active {
		t.Error("leader should be done after a leaf")
	}
}

func TestSearchCellsFallsBackToFuzzy(t *testing.T) {
	a1, a2 := key(cell.Left, 0, 0), key(cell.Left, 0, 1)
	a, _ := newTestApp(t, map[cell.Key]string{a1: "Buffer A", a2: "Primer"})

	items := a.searchCells("prm")
	if len(items) != 1 || items[0].Key != a2 {
		t.Errorf("items = %+v", items)
	}
	if all := a.searchCells(""); len(all) != 2 {
		t.Errorf("empty query returned %d items", len(all))
	}
}

func TestYankUsesClipboard(t *testing.T) {
	k := key(cell.Left, 0, 0)
	a, _ := newTestApp(t, map[cell.Key]string{k: "Sample"})
	var got string
	a.copy = func(s string) error { got = s; return nil }

	a.grid.SetCursor(k)
	act(a, panel.ActYank, k)
	if got != "Sample" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestSessionStateRoundTrip(t *testing.T) {
	store := session.NewStore(t.TempDir())
	if err := store.Save(session.State{Theme: "nord", Cursor: "middle-3-1", ShowGroups: false, ShowInfo: true}); err != nil {
		t.Fatal(err)
	}

	a := New(config.Default(), Deps{Layout: layout.Default(), State: store})
	if a.theme.Name != "nord" || a.showGroups || !a.showInfo {
		t.Errorf("restored theme=%s groups=%v info=%v", a.theme.Name, a.showGroups, a.showInfo)
	}
	if got := a.grid.Cursor(); got != key(cell.Middle, 3, 1) {
		t.Errorf("cursor = %v", got)
	}

	a.CycleTheme()
	a.Close()
	st, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if st.Theme != "gruvbox" || st.Cursor != "middle-3-1" {
		t.Errorf("saved state = %+v", st)
	}
}
