package config

// Keybind represents a key binding configuration.
type Keybind struct {
	Sequence string
	Action   string
}

// DefaultKeybinds returns the default leader key bindings.
func DefaultKeybinds() []Keybind {
	return []Keybind{
		{Sequence: "Space Space", Action: "finder"},
		{Sequence: "Space l l", Action: "link"},
		{Sequence: "Space l x", Action: "cancel_link"},
		{Sequence: "Space c e", Action: "edit_cell"},
		{Sequence: "Space c u", Action: "unlink_cell"},
		{Sequence: "Space c x", Action: "erase_cell"},
		{Sequence: "Space c o", Action: "toggle_out_fridge"},
		{Sequence: "Space c y", Action: "yank_cell"},
		{Sequence: "Space g s", Action: "select_group"},
		{Sequence: "Space g r", Action: "rename_group"},
		{Sequence: "Space g u", Action: "unlink_group"},
		{Sequence: "Space g d", Action: "delete_group"},
		{Sequence: "Space v g", Action: "toggle_groups"},
		{Sequence: "Space v i", Action: "toggle_info"},
		{Sequence: "Space v t", Action: "cycle_theme"},
		{Sequence: "Space d p", Action: "populate"},
		{Sequence: "Space d r", Action: "reset"},
		{Sequence: "Space q q", Action: "quit"},
	}
}

// GridKeybinds returns the single keys handled by the grid.
func GridKeybinds() []Keybind {
	return []Keybind{
		{Sequence: "h j k l / arrows", Action: "move"},
		{Sequence: "tab / shift+tab", Action: "next_unit"},
		{Sequence: "0 / $", Action: "first_last_column"},
		{Sequence: "s", Action: "select"},
		{Sequence: "enter / i", Action: "edit_cell"},
		{Sequence: "L", Action: "link"},
		{Sequence: "u", Action: "unlink_cell"},
		{Sequence: "x", Action: "erase_cell"},
		{Sequence: "o", Action: "toggle_out_fridge"},
		{Sequence: "y", Action: "yank_cell"},
		{Sequence: "G", Action: "select_group"},
		{Sequence: "U", Action: "unlink_group"},
		{Sequence: "D", Action: "delete_group"},
		{Sequence: "R", Action: "rename_group"},
		{Sequence: "esc", Action: "clear"},
		{Sequence: "ctrl+z", Action: "undo"},
		{Sequence: "ctrl+h / ctrl+l", Action: "focus_panel"},
	}
}
