package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/theme"
)

// Info shows the details of the focused cell and, when it is linked or a
// group is picked, of that group.
type Info struct {
	width   int
	height  int
	key     cell.Key
	record  cell.Record
	hasCell bool
	group   *inventory.Group
	focused bool
	theme   *theme.Theme
}

func NewInfo() Info {
	return Info{}
}

func (i *Info) SetTheme(th *theme.Theme) { i.theme = th }

func (i *Info) SetCell(k cell.Key, r cell.Record) {
	i.key = k
	i.record = r
	i.hasCell = true
}

func (i *Info) SetGroup(g inventory.Group, ok bool) {
	if !ok {
		i.group = nil
		return
	}
	i.group = &g
}

func (i *Info) Clear() {
	i.hasCell = false
	i.group = nil
}

// Lines returns the plain text rows the panel shows.
func (i Info) Lines() []string {
	var lines []string
	if i.hasCell {
		r := i.record
		label := r.Text
		if !r.HasContent() {
			label = "(empty)"
		}
		lines = append(lines, "Cell "+i.key.String(), "  "+label)
		if r.OutFridge {
			lines = append(lines, "  out of fridge")
		}
		if r.Linked {
			lines = append(lines, "  in "+r.GroupName)
		}
	}
	if g := i.group; g != nil {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("%s (%d cells)", g.Name, g.Size()), "  color "+g.Color)
		for _, k := range g.Keys {
			lines = append(lines, "  "+k.String())
		}
	}
	return lines
}

func (i Info) View() string {
	if i.width == 0 || i.height == 0 {
		return ""
	}
	th := i.theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Info"))
	b.WriteByte('\n')

	viewHeight := max(0, i.height-2)

	lines := i.Lines()
	if len(lines) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("Nothing selected"))
		b.WriteByte('\n')
		return b.String()
	}

	for j := 0; j < len(lines) && j < viewHeight; j++ {
		line := runewidth.Truncate(lines[j], max(1, i.width-2), "…")
		if i.group != nil && strings.HasPrefix(lines[j], i.group.Name+" (") {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(i.group.Color)).Bold(true).Render(line)
		}
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

func (i *Info) SetSize(width, height int) {
	i.width = width
	i.height = height
}

func (i *Info) SetFocused(focused bool) {
	i.focused = focused
}
