package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/logging"
	"github.com/pfassina/labtracker/internal/panel"
	"github.com/pfassina/labtracker/internal/persist"
	"github.com/pfassina/labtracker/internal/session"
	"github.com/pfassina/labtracker/internal/theme"
	"github.com/pfassina/labtracker/internal/toast"
)

type focusedPanel int

const (
	focusGrid focusedPanel = iota
	focusGroups
	focusInfo
	focusFinder
)

type promptAction struct {
	kind string // "edit", "rename-group", "delete-group", "populate", "reset", "alert"
	key  string
	name string
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Inventory *inventory.Inventory
	Layout    layout.Layout
	Logger    *log.Logger
	// Searcher backs the finder with a full-text index when the backend has one.
	Searcher persist.Searcher
	// Backend is the storage label shown in the status bar.
	Backend string
	// Clipboard receives yanked labels. Defaults to the system clipboard.
	Clipboard func(string) error
	// Session names the session in logs.
	Session string
	// State remembers the theme, panels and cursor between runs.
	State *session.Store
}

type App struct {
	cfg      config.Config
	inv      *inventory.Inventory
	lay      layout.Layout
	sel      inventory.Selection
	bridge   *toast.Bridge
	logger   *log.Logger
	search   persist.Searcher
	state    *session.Store
	copy     func(string) error
	events   chan tea.Msg
	done     chan struct{}
	closed   sync.Once
	grid     panel.Grid
	groups   panel.Groups
	info     panel.Info
	status   panel.Status
	whichKey panel.WhichKey
	finder   panel.Finder
	prompt   panel.Prompt
	toasts   panel.Toasts
	theme    theme.Theme
	width    int
	height   int
	focused  focusedPanel

	showGroups bool
	showInfo   bool

	// Leader key system
	bindings map[string]*Binding
	leader   LeaderState

	// pendingPrompt tracks which action the overlay prompt is serving.
	pendingPrompt promptAction

	unsubscribe func()
	noticeSeq   int
}

func New(cfg config.Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if deps.Session != "" {
		logger = logger.With("session", deps.Session)
	}
	lay := deps.Layout
	if len(lay.Units) == 0 {
		lay = cfg.Layout
	}
	inv := deps.Inventory
	if inv == nil {
		inv = inventory.New(inventory.WithLogger(logger), inventory.WithLayout(lay))
	}
	copyFn := deps.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	a := &App{
		cfg:        cfg,
		inv:        inv,
		lay:        lay,
		logger:     logger,
		search:     deps.Searcher,
		state:      deps.State,
		copy:       copyFn,
		events:     make(chan tea.Msg, eventBuffer),
		done:       make(chan struct{}),
		groups:     panel.NewGroups(),
		info:       panel.NewInfo(),
		status:     panel.NewStatus(deps.Backend),
		whichKey:   panel.NewWhichKey(),
		finder:     panel.NewFinder(),
		prompt:     panel.NewPrompt(),
		theme:      theme.Get(cfg.Theme),
		focused:    focusGrid,
		showGroups: cfg.ShowGroups,
		showInfo:   cfg.ShowInfo,
	}
	a.bridge = toast.NewBridge(
		toast.WithDuration(time.Duration(cfg.ToastDuration)*time.Millisecond),
		toast.WithOnChange(func() { a.send(toastsChangedMsg{}) }),
	)
	a.grid = panel.NewGrid(inv, lay, &a.sel)
	a.grid.SetRestored(a.bridge.Restored)
	a.toasts = panel.NewToasts(a.bridge)
	a.finder.SetSearchFunc(a.searchCells)
	a.unsubscribe = inv.Subscribe(func(ch inventory.Change) {
		a.send(inventoryChangedMsg{action: ch.Action})
	})

	a.initLeader()
	a.restoreSession()
	a.applyTheme()
	a.refresh()
	return a
}

// applyTheme points every panel at the app's theme value.
func (a *App) applyTheme() {
	a.grid.SetTheme(&a.theme)
	a.groups.SetTheme(&a.theme)
	a.info.SetTheme(&a.theme)
	a.finder.SetTheme(&a.theme)
	a.prompt.SetTheme(&a.theme)
	a.status.SetTheme(&a.theme)
	a.whichKey.SetTheme(&a.theme)
	a.toasts.SetTheme(&a.theme)
}

// eventBuffer bounds the queue of background events. Every event triggers
// a full refresh, so dropping one while the queue is full loses nothing.
const eventBuffer = 64

// send queues msg for the update loop without blocking the caller, which
// may be another session or a timer goroutine.
func (a *App) send(msg tea.Msg) {
	select {
	case a.events <- msg:
	default:
	}
}

// listen waits for the next background event.
func (a *App) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-a.events:
			return msg
		case <-a.done:
			return nil
		}
	}
}

func (a *App) Init() tea.Cmd {
	return a.listen()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}

		// Prompt takes priority when visible
		if a.prompt.Visible() {
			var cmd tea.Cmd
			a.prompt, cmd = a.prompt.Update(msg)
			return a, cmd
		}

		// Finder takes priority when visible
		if a.finder.Visible() {
			var cmd tea.Cmd
			a.finder, cmd = a.finder.Update(msg)
			return a, cmd
		}

		switch msg.String() {
		case "ctrl+z":
			a.cancelLeader()
			a.updateWhichKey()
			a.Undo()
			a.refresh()
			return a, nil
		case "ctrl+h":
			a.focusLeft()
			return a, nil
		case "ctrl+l":
			a.focusRight()
			return a, nil
		}

		// Escape returns from side panels to the grid (unless group help is showing)
		if msg.String() == "esc" && !a.leader.active && (a.focused == focusGroups || a.focused == focusInfo) {
			if a.focused == focusGroups && a.groups.ShowingHelp() {
				break // let the list handle it to dismiss help
			}
			a.setFocus(focusGrid)
			return a, nil
		}

		// Skip the leader when group help is showing so any key dismisses help first
		if a.focused != focusGroups || !a.groups.ShowingHelp() {
			if consumed, cmd := a.handleLeaderKey(msg.String()); consumed {
				a.updateWhichKey()
				a.refresh()
				return a, cmd
			}
		}

	case leaderTimeoutMsg:
		a.handleLeaderTimeout()
		a.updateWhichKey()
		return a, nil

	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes; ignore them.
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		a.finder.SetSize(msg.Width, msg.Height)

		minW, minH := a.minWindowSize()
		if a.width < minW || a.height < minH {
			return a, tea.ClearScreen
		}

		l := a.computeLayout()
		promptW := min(72, max(40, int(float64(l.GridWidth)*0.6)), a.width-2)
		a.prompt.SetSize(promptW, l.Height)

		a.updateLayout()
		return a, tea.ClearScreen

	case inventoryChangedMsg:
		a.refresh()
		return a, a.listen()

	case toastsChangedMsg:
		return a, a.listen()

	case storageErrorMsg:
		a.logger.Error("storage", "err", msg.err)
		a.bridge.Notify(toast.Notification{Message: msg.err.Error(), Severity: toast.Error})
		return a, a.listen()

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.status.SetNotice("")
		}
		return a, nil

	case panel.GridActionMsg:
		cmd := a.handleGridAction(msg)
		a.refresh()
		return a, cmd

	case panel.GroupSelectedMsg:
		a.SelectGroup(msg.Name)
		a.setFocus(focusGrid)
		a.refresh()
		return a, nil

	case panel.GroupRenameMsg:
		a.StartRename(msg.Name)
		a.refresh()
		return a, nil

	case panel.GroupUnlinkMsg:
		a.UnlinkGroup(msg.Name)
		a.refresh()
		return a, nil

	case panel.GroupDeleteMsg:
		a.ConfirmDeleteGroup(msg.Name)
		return a, nil

	case panel.FinderResultMsg:
		a.grid.SetCursor(msg.Key)
		a.setFocus(focusGrid)
		a.refresh()
		return a, nil

	case panel.FinderClosedMsg:
		a.setFocus(focusGrid)
		return a, nil

	case panel.PromptResultMsg:
		cmd := a.handlePromptResult(msg.Value)
		a.refresh()
		return a, cmd

	case panel.PromptCancelledMsg:
		a.handlePromptCancelled()
		a.refresh()
		return a, nil
	}

	// Route key events based on focus
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); ok {
		switch a.focused {
		case focusGroups:
			a.groups, cmd = a.groups.Update(msg)
		case focusInfo:
		default:
			a.status.ClearError()
			a.grid, cmd = a.grid.Update(msg)
		}
		a.refresh()
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := a.minWindowSize()
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		box := lipgloss.NewStyle().
			Foreground(a.theme.Text).
			Padding(1, 2).
			Render(msg)
		base := strings.Repeat("\n", max(1, a.height))
		return overlayCenter(base, box, a.width, a.height)
	}

	l := a.computeLayout()

	var columns []string
	if l.GroupsWidth > 0 {
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(a.theme.Border).
			Width(max(0, l.GroupsWidth-1)).
			Height(l.Height)
		columns = append(columns, borderStyle.Render(a.groups.View()))
	}

	gridStyle := lipgloss.NewStyle().
		Width(l.GridWidth).
		Height(l.Height).
		Padding(0, 1)
	columns = append(columns, gridStyle.Render(a.grid.View()))

	if l.InfoWidth > 0 {
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(a.theme.Border).
			Width(max(0, l.InfoWidth-1)).
			Height(l.Height)
		columns = append(columns, borderStyle.Render(a.info.View()))
	}

	result := lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n" + a.status.View()

	if t := a.toasts.View(); t != "" {
		w, h := lipgloss.Width(t), lipgloss.Height(t)
		result = overlayAt(result, t, a.width, max(0, a.height-1-h), max(0, a.width-w-1))
	}

	// Overlay which-key popup
	if a.leader.showHelp {
		if wk := a.whichKey.View(); wk != "" {
			result = overlayCenter(result, wk, a.width, a.height)
		}
	}

	if a.finder.Visible() {
		if fv := a.finder.View(); fv != "" {
			result = overlayCenter(result, fv, a.width, a.height)
		}
	}

	if a.prompt.Visible() {
		if pv := a.prompt.View(); pv != "" {
			result = overlayCenter(result, pv, a.width, a.height)
		}
	}

	return result
}

// Close releases the session's subscriptions and timers. The inventory
// and its backend belong to the caller.
func (a *App) Close() {
	a.closed.Do(func() {
		a.unsubscribe()
		a.bridge.Close()
		a.saveSession()
		close(a.done)
		a.logger.Debug("session closed")
	})
}

func (a *App) restoreSession() {
	if a.state == nil {
		return
	}
	st, err := a.state.Load()
	if err != nil {
		a.logger.Warn("session state", "err", err)
		return
	}
	if st.Theme != "" {
		a.theme = theme.Get(st.Theme)
	}
	a.showGroups = st.ShowGroups
	a.showInfo = st.ShowInfo
	if k, err := cell.ParseKey(st.Cursor); err == nil {
		a.grid.SetCursor(k)
	}
}

func (a *App) saveSession() {
	if a.state == nil {
		return
	}
	err := a.state.Save(session.State{
		Theme:      a.theme.Name,
		Cursor:     a.grid.Cursor().String(),
		ShowGroups: a.showGroups,
		ShowInfo:   a.showInfo,
	})
	if err != nil {
		a.logger.Warn("save session state", "err", err)
	}
}

// Selection exposes the session's selection, mainly for tests.
func (a *App) Selection() *inventory.Selection {
	return &a.sel
}

// refresh pushes inventory and selection state into the panels.
func (a *App) refresh() {
	if a.sel.GroupMode {
		if _, ok := a.inv.Group(a.sel.Group); !ok {
			a.sel.GroupMode = false
			a.sel.Group = ""
		}
	}

	a.groups.Refresh(a.inv.Groups())
	active := ""
	if a.sel.GroupMode {
		active = a.sel.Group
	}
	a.groups.SetActive(active)

	k := a.grid.Cursor()
	r := a.inv.Get(k)
	a.status.SetCursor(k.String(), r.Text)
	a.status.SetSelection(a.sel.Len(), active)
	switch {
	case a.sel.LinkMode:
		a.status.SetMode(panel.ModeLink)
	case a.sel.GroupMode:
		a.status.SetMode(panel.ModeGroup)
	default:
		a.status.SetMode(panel.ModeNormal)
	}

	if sk, sr, ok := a.inv.SelectedCellData(&a.sel); ok {
		a.info.SetCell(sk, sr)
		r = sr
	} else {
		a.info.SetCell(k, r)
	}
	name := active
	if name == "" && r.Linked {
		name = r.GroupName
	}
	g, ok := a.inv.Group(name)
	a.info.SetGroup(g, ok && name != "")
}

func (a *App) computeLayout() Layout {
	return ComputeLayout(a.width, a.height, a.showGroups, a.showInfo, a.cfg.GroupsWidth, a.cfg.InfoWidth)
}

func (a *App) minWindowSize() (minW, minH int) {
	// Below this the three units cannot show a useful number of cells.
	return 60, 12
}

func (a *App) updateLayout() {
	l := a.computeLayout()

	a.groups.SetSize(l.GroupsWidth, l.Height)
	a.info.SetSize(l.InfoWidth, l.Height)
	a.grid.SetSize(max(1, l.GridWidth-2), l.Height)
	a.status.SetWidth(a.width)
	a.whichKey.SetWidth(a.width / 2)
	a.toasts.SetWidth(min(44, a.width/3))
}

func (a *App) updateWhichKey() {
	if !a.leader.showHelp || a.leader.node == nil {
		a.whichKey.Clear()
		return
	}

	var entries []panel.WhichKeyEntry
	for _, b := range a.leader.node {
		entries = append(entries, panel.WhichKeyEntry{
			Key:   b.Key,
			Label: b.Label,
		})
	}
	a.whichKey.SetEntries(a.leader.keys, entries)
}

func (a *App) setFocus(target focusedPanel) {
	a.grid.SetFocused(target == focusGrid)
	a.groups.SetFocused(target == focusGroups)
	a.info.SetFocused(target == focusInfo)
	a.focused = target
}

func (a *App) focusLeft() {
	switch a.focused {
	case focusGrid:
		if a.showGroups {
			a.setFocus(focusGroups)
		}
	case focusInfo:
		a.setFocus(focusGrid)
	}
}

func (a *App) focusRight() {
	switch a.focused {
	case focusGrid:
		if a.showInfo {
			a.setFocus(focusInfo)
		}
	case focusGroups:
		a.setFocus(focusGrid)
	}
}

func (a *App) ToggleGroups() {
	a.showGroups = !a.showGroups
	if !a.showGroups && a.focused == focusGroups {
		a.setFocus(focusGrid)
	}
	a.updateLayout()
}

func (a *App) ToggleInfo() {
	a.showInfo = !a.showInfo
	if !a.showInfo && a.focused == focusInfo {
		a.setFocus(focusGrid)
	}
	a.updateLayout()
}

// CycleTheme switches to the next built-in theme.
func (a *App) CycleTheme() {
	names := theme.Names()
	next := names[0]
	for i, n := range names {
		if n == a.theme.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.theme = theme.Get(next)
	a.status.SetNotice("theme " + next)
}

func overlayCenter(base, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}
	row := max(0, (height-len(overlayLines))/2)
	col := max(0, (width-overlayWidth)/2)
	return overlayAt(base, overlay, width, row, col)
}

// overlayAt draws overlay over base with its top-left corner at row, col.
func overlayAt(base, overlay string, width, row, col int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}

	for i, overlayLine := range overlayLines {
		r := row + i
		if r >= len(baseLines) {
			break
		}

		// Pad with spaces based on *visible* width (handles ANSI strings safely).
		baseLine := baseLines[r]
		if w := lipgloss.Width(baseLine); w < col {
			baseLine += strings.Repeat(" ", col-w)
		}

		// Keep the left part of the base line, replace the middle with the
		// overlay and keep the right tail.
		left := ansi.Cut(baseLine, 0, col)
		right := ansi.Cut(baseLine, col+overlayWidth, width)
		if w := lipgloss.Width(overlayLine); w < overlayWidth {
			overlayLine += strings.Repeat(" ", overlayWidth-w)
		}

		baseLines[r] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}
