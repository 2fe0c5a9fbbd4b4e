package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Binding represents a leader key binding.
type Binding struct {
	Key      string
	Label    string
	Action   func(a *App) tea.Cmd
	Children map[string]*Binding
}

// LeaderState tracks the leader key sequence.
type LeaderState struct {
	active   bool
	keys     string
	node     map[string]*Binding
	showHelp bool
}

// leaderTimeoutMsg signals leader key timeout.
type leaderTimeoutMsg struct{}

func leaf(key, label string, fn func(a *App) tea.Cmd) *Binding {
	return &Binding{Key: key, Label: label, Action: fn}
}

func newBindings() map[string]*Binding {
	return map[string]*Binding{
		" ": leaf("Space", "Find cell", func(a *App) tea.Cmd {
			a.ToggleFinder()
			return nil
		}),
		"l": {
			Key: "l", Label: "+link",
			Children: map[string]*Binding{
				"l": leaf("l", "Link / enter link mode", func(a *App) tea.Cmd {
					return a.LinkAction()
				}),
				"x": leaf("x", "Cancel link mode", func(a *App) tea.Cmd {
					a.CancelLink()
					return nil
				}),
			},
		},
		"c": {
			Key: "c", Label: "+cell",
			Children: map[string]*Binding{
				"e": leaf("e", "Edit label", func(a *App) tea.Cmd {
					a.StartEdit(a.grid.Cursor())
					return nil
				}),
				"u": leaf("u", "Unlink", func(a *App) tea.Cmd {
					return a.UnlinkCells()
				}),
				"x": leaf("x", "Erase", func(a *App) tea.Cmd {
					return a.EraseCells()
				}),
				"o": leaf("o", "Toggle out of fridge", func(a *App) tea.Cmd {
					return a.ToggleOutFridge()
				}),
				"y": leaf("y", "Yank label", func(a *App) tea.Cmd {
					return a.Yank()
				}),
			},
		},
		"g": {
			Key: "g", Label: "+group",
			Children: map[string]*Binding{
				"s": leaf("s", "Select group", func(a *App) tea.Cmd {
					a.SelectGroup(a.cursorGroup())
					return nil
				}),
				"r": leaf("r", "Rename group", func(a *App) tea.Cmd {
					a.StartRename(a.targetGroup())
					return nil
				}),
				"u": leaf("u", "Unlink group", func(a *App) tea.Cmd {
					return a.UnlinkGroup(a.targetGroup())
				}),
				"d": leaf("d", "Delete group", func(a *App) tea.Cmd {
					a.ConfirmDeleteGroup(a.targetGroup())
					return nil
				}),
			},
		},
		"v": {
			Key: "v", Label: "+view",
			Children: map[string]*Binding{
				"g": leaf("g", "Toggle groups", func(a *App) tea.Cmd {
					a.ToggleGroups()
					return nil
				}),
				"i": leaf("i", "Toggle info", func(a *App) tea.Cmd {
					a.ToggleInfo()
					return nil
				}),
				"t": leaf("t", "Cycle theme", func(a *App) tea.Cmd {
					a.CycleTheme()
					return nil
				}),
			},
		},
		"d": {
			Key: "d", Label: "+data",
			Children: map[string]*Binding{
				"p": leaf("p", "Populate sample data", func(a *App) tea.Cmd {
					a.ConfirmPopulate()
					return nil
				}),
				"r": leaf("r", "Reset inventory", func(a *App) tea.Cmd {
					a.ConfirmReset()
					return nil
				}),
			},
		},
		"q": {
			Key: "q", Label: "+quit",
			Children: map[string]*Binding{
				"q": leaf("q", "Quit", func(a *App) tea.Cmd {
					a.Close()
					return tea.Quit
				}),
			},
		},
	}
}

func (a *App) initLeader() {
	a.bindings = newBindings()
	a.leader = LeaderState{}
}

func (a *App) leaderTick() tea.Cmd {
	return tea.Tick(time.Duration(a.cfg.LeaderTimeout)*time.Millisecond, func(time.Time) tea.Msg {
		return leaderTimeoutMsg{}
	})
}

// handleLeaderKey processes a key during leader mode.
// Returns true if the key was consumed by the leader system.
func (a *App) handleLeaderKey(key string) (consumed bool, cmd tea.Cmd) {
	if !a.leader.active {
		if key != a.leaderKey() || a.sel.Editing || a.sel.Renaming {
			return false, nil
		}
		a.leader.active = true
		a.leader.keys = ""
		a.leader.node = a.bindings
		a.leader.showHelp = false
		// Start timeout for which-key popup
		return true, a.leaderTick()
	}

	// We're in leader mode - accumulate the key
	a.leader.keys += key

	if binding, ok := a.leader.node[key]; ok {
		if binding.Children != nil {
			// This is a group - wait for next key
			a.leader.node = binding.Children
			a.leader.showHelp = false
			return true, a.leaderTick()
		}
		// Leaf binding - execute
		a.cancelLeader()
		if binding.Action != nil {
			return true, binding.Action(a)
		}
		return true, nil
	}

	// No match - cancel leader mode
	a.cancelLeader()
	return true, nil
}

func (a *App) leaderKey() string {
	if a.cfg.LeaderKey == "" {
		return " "
	}
	return a.cfg.LeaderKey
}

func (a *App) handleLeaderTimeout() {
	if a.leader.active {
		a.leader.showHelp = true
	}
}

func (a *App) cancelLeader() {
	a.leader.active = false
	a.leader.showHelp = false
}

// lookupBinding walks the binding tree along a sequence such as
// "Space c e" and returns the leaf it ends on.
func (a *App) lookupBinding(seq []string) (*Binding, bool) {
	node := a.bindings
	var b *Binding
	for _, k := range seq {
		if k == "Space" {
			k = " "
		}
		next, ok := node[k]
		if !ok {
			return nil, false
		}
		b = next
		node = next.Children
	}
	return b, b != nil && b.Action != nil
}
