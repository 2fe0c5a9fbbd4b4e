package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/labtracker/internal/theme"
	"github.com/pfassina/labtracker/internal/toast"
)

const maxToasts = 4

// Toasts renders the live notifications as a stack, newest at the bottom.
type Toasts struct {
	bridge *toast.Bridge
	width  int
	theme  *theme.Theme
}

func NewToasts(b *toast.Bridge) Toasts {
	return Toasts{bridge: b, width: 40}
}

func (t *Toasts) SetTheme(th *theme.Theme) { t.theme = th }

func (t *Toasts) SetWidth(width int) {
	t.width = max(20, width)
}

func (t Toasts) View() string {
	if t.bridge == nil {
		return ""
	}
	list := t.bridge.List()
	if len(list) == 0 {
		return ""
	}
	if len(list) > maxToasts {
		list = list[len(list)-maxToasts:]
	}

	th := t.theme
	boxes := make([]string, 0, len(list))
	for _, n := range list {
		color := th.Accent
		switch n.Severity {
		case toast.Success:
			color = th.Success
		case toast.Warning:
			color = th.Warning
		case toast.Error:
			color = th.Error
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(th.Text).
			Padding(0, 1).
			Width(t.width - 2)

		body := n.Message
		if n.CanUndo {
			hint := lipgloss.NewStyle().Foreground(th.Dim).Render("ctrl+z undo")
			body += "\n" + hint
		}
		boxes = append(boxes, box.Render(body))
	}
	return strings.Join(boxes, "\n")
}
