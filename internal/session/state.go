package session

// State is the view state remembered between local TUI runs.
type State struct {
	Theme      string `json:"theme,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	ShowGroups bool   `json:"show_groups"`
	ShowInfo   bool   `json:"show_info"`
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowGroups: true,
		ShowInfo:   true,
	}
}
