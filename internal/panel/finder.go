package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/theme"
)

// FinderItem represents an item in the finder results.
type FinderItem struct {
	Title string
	Key   cell.Key
	Extra string // group name
}

// FinderResultMsg is sent when a finder item is selected.
type FinderResultMsg struct {
	Key cell.Key
}

// FinderClosedMsg is sent when the finder is dismissed.
type FinderClosedMsg struct{}

// SearchFunc is called to get results for a query.
type SearchFunc func(query string) []FinderItem

type finderSource []FinderItem

func (s finderSource) String(i int) string {
	it := s[i]
	return it.Title + " " + it.Extra + " " + it.Key.String()
}

func (s finderSource) Len() int { return len(s) }

// FuzzyFilter ranks items against query. An empty query keeps every item
// in its original order.
func FuzzyFilter(items []FinderItem, query string) []FinderItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, finderSource(items))
	out := make([]FinderItem, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}

// Finder is a fuzzy finder overlay over cell labels.
type Finder struct {
	input    textinput.Model
	items    []FinderItem
	cursor   int
	width    int
	height   int
	visible  bool
	searchFn SearchFunc
	theme    *theme.Theme
}

// SetTheme sets the color theme for the finder panel.
func (f *Finder) SetTheme(th *theme.Theme) { f.theme = th }

func NewFinder() Finder {
	ti := textinput.New()
	ti.Placeholder = "Search cells..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return Finder{
		input: ti,
	}
}

func (f *Finder) SetSearchFunc(fn SearchFunc) {
	f.searchFn = fn
}

func (f *Finder) Show() {
	f.visible = true
	f.input.SetValue("")
	f.cursor = 0
	f.input.Focus()
	if f.searchFn != nil {
		f.items = f.searchFn("")
	}
}

func (f *Finder) Hide() {
	f.visible = false
	f.input.Blur()
}

func (f Finder) Visible() bool {
	return f.visible
}

func (f Finder) Update(msg tea.Msg) (Finder, tea.Cmd) {
	if !f.visible {
		return f, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			f.visible = false
			return f, func() tea.Msg { return FinderClosedMsg{} }

		case "enter":
			if f.cursor < len(f.items) {
				item := f.items[f.cursor]
				f.visible = false
				return f, func() tea.Msg {
					return FinderResultMsg{Key: item.Key}
				}
			}
			return f, nil

		case "up", "ctrl+p", "ctrl+k":
			if f.cursor > 0 {
				f.cursor--
			}
			return f, nil

		case "down", "ctrl+n", "ctrl+j":
			if f.cursor < len(f.items)-1 {
				f.cursor++
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	prevValue := f.input.Value()
	f.input, cmd = f.input.Update(msg)

	// Re-search on input change
	if f.input.Value() != prevValue && f.searchFn != nil {
		f.items = f.searchFn(f.input.Value())
		f.cursor = 0
	}

	return f, cmd
}

func (f Finder) View() string {
	if !f.visible {
		return ""
	}

	th := f.theme

	width := f.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	var lines []string
	lines = append(lines, titleStyle.Render("Find Cell"))
	lines = append(lines, f.input.View())
	lines = append(lines, "")

	maxResults := f.height/2 - 4
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > len(f.items) {
		maxResults = len(f.items)
	}

	dim := lipgloss.NewStyle().Foreground(th.Dim)
	if len(f.items) == 0 {
		lines = append(lines, dim.Render("No results"))
	} else {
		for i := 0; i < maxResults; i++ {
			item := f.items[i]
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(th.Text)

			if i == f.cursor {
				prefix = "> "
				style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
			}

			line := fmt.Sprintf("%s%-14s %s", prefix, item.Key, item.Title)
			line = runewidth.Truncate(line, max(1, innerWidth-runewidth.StringWidth(item.Extra)-1), "…")
			rendered := style.Render(line)
			if item.Extra != "" {
				rendered += " " + dim.Render(item.Extra)
			}
			lines = append(lines, rendered)
		}

		if len(f.items) > maxResults {
			lines = append(lines, dim.Render(fmt.Sprintf("  ... and %d more", len(f.items)-maxResults)))
		}
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (f *Finder) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = width/2 - 8
}
