package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/labtracker/internal/theme"
)

// WhichKeyEntry represents a single key binding for display.
type WhichKeyEntry struct {
	Key   string
	Label string
}

// group reports whether the entry opens a nested key group ("+link").
func (e WhichKeyEntry) group() bool {
	return strings.HasPrefix(e.Label, "+")
}

// WhichKey renders a which-key style popup showing available bindings.
type WhichKey struct {
	entries []WhichKeyEntry
	prefix  string
	width   int
	theme   *theme.Theme
}

func NewWhichKey() WhichKey {
	return WhichKey{}
}

func (w *WhichKey) SetTheme(th *theme.Theme) { w.theme = th }

// SetEntries replaces the shown bindings. Leaf actions come first, then
// groups, each sorted by key.
func (w *WhichKey) SetEntries(prefix string, entries []WhichKeyEntry) {
	w.prefix = prefix
	w.entries = entries
	sort.Slice(w.entries, func(i, j int) bool {
		a, b := w.entries[i], w.entries[j]
		if a.group() != b.group() {
			return !a.group()
		}
		return a.Key < b.Key
	})
}

func (w *WhichKey) SetWidth(width int) {
	w.width = width
}

func (w *WhichKey) Clear() {
	w.entries = nil
	w.prefix = ""
}

func (w WhichKey) Entries() []WhichKeyEntry {
	return w.entries
}

func (w WhichKey) View() string {
	if len(w.entries) == 0 {
		return ""
	}
	th := w.theme

	width := w.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(width - 4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Success).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(th.Text)

	groupStyle := lipgloss.NewStyle().
		Foreground(th.GroupMode)

	var lines []string
	if w.prefix != "" {
		lines = append(lines, titleStyle.Render(fmt.Sprintf("Leader > %s", w.prefix)))
	} else {
		lines = append(lines, titleStyle.Render("Leader"))
	}

	render := func(e WhichKeyEntry) string {
		label := labelStyle.Render(e.Label)
		if e.group() {
			label = groupStyle.Render(e.Label)
		}
		return fmt.Sprintf("%s %s", keyStyle.Render(e.Key), label)
	}

	// Two columns when they fit
	colWidth := (width - 4) / 2
	if colWidth < 20 {
		colWidth = width - 4
	}

	for i := 0; i < len(w.entries); i += 2 {
		left := render(w.entries[i])
		if i+1 < len(w.entries) && colWidth < width-4 {
			leftPad := colWidth - lipgloss.Width(left)
			if leftPad < 1 {
				leftPad = 1
			}
			lines = append(lines, left+strings.Repeat(" ", leftPad)+render(w.entries[i+1]))
		} else {
			lines = append(lines, left)
		}
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
