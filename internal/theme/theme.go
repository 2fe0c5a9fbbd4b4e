package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by all TUI panels.
// Panels hold a *Theme pointer so switching themes at runtime is visible on
// the next View() call.
type Theme struct {
	Name       string
	Bg         lipgloss.Color
	Accent     lipgloss.Color
	Subtle     lipgloss.Color
	Text       lipgloss.Color
	Dim        lipgloss.Color
	Border     lipgloss.Color
	StatusBg   lipgloss.Color
	StatusFg   lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
	NormalMode lipgloss.Color
	LinkMode   lipgloss.Color
	GroupMode  lipgloss.Color

	// Cell colors.
	CellEmpty    lipgloss.Color
	CellRegular  lipgloss.Color
	CellSelected lipgloss.Color
	CellHover    lipgloss.Color
	CellOut      lipgloss.Color
	CellRestored lipgloss.Color
}

var themes = map[string]Theme{
	"catppuccin": {
		Name:         "catppuccin",
		Bg:           lipgloss.Color("#1e1e2e"),
		Accent:       lipgloss.Color("#cba6f7"),
		Subtle:       lipgloss.Color("#6c7086"),
		Text:         lipgloss.Color("#cdd6f4"),
		Dim:          lipgloss.Color("#585b70"),
		Border:       lipgloss.Color("#45475a"),
		StatusBg:     lipgloss.Color("#313244"),
		StatusFg:     lipgloss.Color("#cdd6f4"),
		Error:        lipgloss.Color("#f38ba8"),
		Warning:      lipgloss.Color("#fab387"),
		Success:      lipgloss.Color("#a6e3a1"),
		NormalMode:   lipgloss.Color("#89b4fa"),
		LinkMode:     lipgloss.Color("#f9e2af"),
		GroupMode:    lipgloss.Color("#f5c2e7"),
		CellEmpty:    lipgloss.Color("#313244"),
		CellRegular:  lipgloss.Color("#45475a"),
		CellSelected: lipgloss.Color("#89b4fa"),
		CellHover:    lipgloss.Color("#585b70"),
		CellOut:      lipgloss.Color("#f38ba8"),
		CellRestored: lipgloss.Color("#a6e3a1"),
	},
	"nord": {
		Name:         "nord",
		Bg:           lipgloss.Color("#2e3440"),
		Accent:       lipgloss.Color("#88c0d0"),
		Subtle:       lipgloss.Color("#4c566a"),
		Text:         lipgloss.Color("#eceff4"),
		Dim:          lipgloss.Color("#434c5e"),
		Border:       lipgloss.Color("#3b4252"),
		StatusBg:     lipgloss.Color("#3b4252"),
		StatusFg:     lipgloss.Color("#eceff4"),
		Error:        lipgloss.Color("#bf616a"),
		Warning:      lipgloss.Color("#d08770"),
		Success:      lipgloss.Color("#a3be8c"),
		NormalMode:   lipgloss.Color("#81a1c1"),
		LinkMode:     lipgloss.Color("#ebcb8b"),
		GroupMode:    lipgloss.Color("#b48ead"),
		CellEmpty:    lipgloss.Color("#3b4252"),
		CellRegular:  lipgloss.Color("#4c566a"),
		CellSelected: lipgloss.Color("#81a1c1"),
		CellHover:    lipgloss.Color("#434c5e"),
		CellOut:      lipgloss.Color("#bf616a"),
		CellRestored: lipgloss.Color("#a3be8c"),
	},
	"gruvbox": {
		Name:         "gruvbox",
		Bg:           lipgloss.Color("#282828"),
		Accent:       lipgloss.Color("#d79921"),
		Subtle:       lipgloss.Color("#665c54"),
		Text:         lipgloss.Color("#ebdbb2"),
		Dim:          lipgloss.Color("#504945"),
		Border:       lipgloss.Color("#3c3836"),
		StatusBg:     lipgloss.Color("#3c3836"),
		StatusFg:     lipgloss.Color("#ebdbb2"),
		Error:        lipgloss.Color("#fb4934"),
		Warning:      lipgloss.Color("#fe8019"),
		Success:      lipgloss.Color("#b8bb26"),
		NormalMode:   lipgloss.Color("#83a598"),
		LinkMode:     lipgloss.Color("#fabd2f"),
		GroupMode:    lipgloss.Color("#d3869b"),
		CellEmpty:    lipgloss.Color("#3c3836"),
		CellRegular:  lipgloss.Color("#504945"),
		CellSelected: lipgloss.Color("#83a598"),
		CellHover:    lipgloss.Color("#665c54"),
		CellOut:      lipgloss.Color("#fb4934"),
		CellRestored: lipgloss.Color("#b8bb26"),
	},
}

// DefaultName is the theme used when none is configured.
const DefaultName = "catppuccin"

// Get returns a theme by name, defaulting to catppuccin.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultName]
}

// Names returns the known theme names in a stable order.
func Names() []string {
	return []string{"catppuccin", "nord", "gruvbox"}
}

// DefaultTheme returns the default color palette.
func DefaultTheme() Theme {
	return Get(DefaultName)
}
