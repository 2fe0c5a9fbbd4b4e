package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/theme"
)

// GroupSelectedMsg is sent when a group is picked in the list.
type GroupSelectedMsg struct {
	Name string
}

// GroupRenameMsg is sent when the user presses 'r' on a group.
type GroupRenameMsg struct {
	Name string
}

// GroupUnlinkMsg is sent when the user presses 'u' on a group.
type GroupUnlinkMsg struct {
	Name string
}

// GroupDeleteMsg is sent when the user presses 'd' on a group.
type GroupDeleteMsg struct {
	Name string
}

// Groups is the group list panel.
type Groups struct {
	groups   []inventory.Group
	active   string
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	showHelp bool
	theme    *theme.Theme
}

func NewGroups() Groups {
	return Groups{}
}

func (g *Groups) SetTheme(th *theme.Theme) { g.theme = th }

// Refresh replaces the listed groups, keeping the cursor on the same name
// when it still exists.
func (g *Groups) Refresh(groups []inventory.Group) {
	name := g.Current()
	g.groups = groups
	for i, gr := range groups {
		if gr.Name == name {
			g.cursor = i
			break
		}
	}
	if g.cursor >= len(g.groups) {
		g.cursor = len(g.groups) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	if g.offset > g.cursor {
		g.offset = g.cursor
	}
}

// SetActive marks the group currently picked for group actions.
func (g *Groups) SetActive(name string) {
	g.active = name
}

// Current returns the name under the cursor.
func (g Groups) Current() string {
	if g.cursor < len(g.groups) {
		return g.groups[g.cursor].Name
	}
	return ""
}

func (g Groups) Init() tea.Cmd {
	return nil
}

func (g Groups) Update(msg tea.Msg) (Groups, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// When help is shown, any key dismisses it
		if g.showHelp {
			g.showHelp = false
			return g, nil
		}

		switch msg.String() {
		case "j", "down":
			if g.cursor < len(g.groups)-1 {
				g.cursor++
				if g.cursor-g.offset >= g.height-2 {
					g.offset++
				}
			}
		case "k", "up":
			if g.cursor > 0 {
				g.cursor--
				if g.cursor < g.offset {
					g.offset = g.cursor
				}
			}
		case "G":
			if len(g.groups) == 0 {
				break
			}
			g.cursor = len(g.groups) - 1
			if g.cursor-g.offset >= g.height-2 {
				g.offset = g.cursor - g.height + 3
			}
		case "g":
			g.cursor = 0
			g.offset = 0
		case "enter":
			if name := g.Current(); name != "" {
				return g, func() tea.Msg { return GroupSelectedMsg{Name: name} }
			}
		case "r":
			if name := g.Current(); name != "" {
				return g, func() tea.Msg { return GroupRenameMsg{Name: name} }
			}
		case "u":
			if name := g.Current(); name != "" {
				return g, func() tea.Msg { return GroupUnlinkMsg{Name: name} }
			}
		case "d":
			if name := g.Current(); name != "" {
				return g, func() tea.Msg { return GroupDeleteMsg{Name: name} }
			}
		case "?":
			g.showHelp = !g.showHelp
		}
	}

	return g, nil
}

func (g Groups) View() string {
	if g.width == 0 || g.height == 0 {
		return ""
	}
	th := g.theme

	var titleStyle lipgloss.Style
	if g.focused {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true).
			Padding(0, 1)
	} else {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Dim).
			Padding(0, 1)
	}

	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf("Groups (%d)", len(g.groups)))
	if g.focused && !g.showHelp {
		hint := lipgloss.NewStyle().Foreground(th.Dim).Render("?")
		gap := g.width - 2 - lipgloss.Width(title) - lipgloss.Width(hint)
		if gap > 0 {
			b.WriteString(title + strings.Repeat(" ", gap) + hint)
		} else {
			b.WriteString(title)
		}
	} else {
		b.WriteString(title)
	}
	b.WriteByte('\n')

	viewHeight := max(0, g.height-2)
	if g.showHelp {
		viewHeight = max(0, viewHeight-9)
	}

	if len(g.groups) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("No groups"))
		b.WriteByte('\n')
	}

	lineWidth := max(1, g.width-4)
	for i := g.offset; i < len(g.groups) && i-g.offset < viewHeight; i++ {
		gr := g.groups[i]
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(gr.Color)).Render("■")

		line := fmt.Sprintf("%s (%d)", gr.Name, gr.Size())
		line = runewidth.FillRight(runewidth.Truncate(line, lineWidth, "…"), lineWidth)

		style := lipgloss.NewStyle().Foreground(th.Text)
		switch {
		case i == g.cursor && g.focused:
			style = style.Foreground(th.Accent).Bold(true)
		case gr.Name == g.active:
			style = style.Foreground(th.GroupMode).Bold(true)
		}
		b.WriteString(" " + swatch + " " + style.Render(line))
		b.WriteByte('\n')
	}

	if g.showHelp {
		b.WriteString(g.renderHelp())
	}

	return b.String()
}

func (g Groups) renderHelp() string {
	th := g.theme
	dim := lipgloss.NewStyle().Foreground(th.Dim)
	key := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Dim).
		Padding(0, 1).
		Width(max(1, g.width-6))

	lines := []struct{ k, v string }{
		{"j/k", "Navigate"},
		{"enter", "Select group"},
		{"r", "Rename group"},
		{"u", "Unlink all"},
		{"d", "Delete all"},
		{"g/G", "Top / Bottom"},
		{"?", "Toggle help"},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-5s", l.k)), dim.Render(l.v)))
	}

	return border.Render(strings.TrimRight(sb.String(), "\n"))
}

func (g *Groups) SetSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *Groups) SetFocused(focused bool) {
	g.focused = focused
}

func (g Groups) ShowingHelp() bool {
	return g.showHelp
}
