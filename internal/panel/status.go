package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/labtracker/internal/theme"
)

// Mode names shown in the status bar.
const (
	ModeNormal = "NORMAL"
	ModeLink   = "LINK"
	ModeGroup  = "GROUP"
)

// Status is the status bar at the bottom.
type Status struct {
	width    int
	mode     string
	cursor   string
	label    string
	selected int
	group    string
	backend  string
	notice   string
	errMsg   string
	theme    *theme.Theme
}

func NewStatus(backend string) Status {
	return Status{
		backend: backend,
		mode:    ModeNormal,
	}
}

func (s *Status) SetTheme(th *theme.Theme) { s.theme = th }

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

// SetCursor shows the key and label under the grid cursor.
func (s *Status) SetCursor(key, label string) {
	s.cursor = key
	s.label = label
}

func (s *Status) SetSelection(n int, group string) {
	s.selected = n
	s.group = group
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

// SetNotice shows a transient right-aligned message such as a yank.
func (s *Status) SetNotice(msg string) {
	s.notice = msg
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) Error() string {
	return s.errMsg
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}
	th := s.theme

	bgStyle := lipgloss.NewStyle().Background(th.StatusBg)

	color := th.NormalMode
	switch s.mode {
	case ModeLink:
		color = th.LinkMode
	case ModeGroup:
		color = th.GroupMode
	}

	modeStyle := lipgloss.NewStyle().
		Background(color).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1)

	sectionStyle := lipgloss.NewStyle().
		Background(th.StatusBg).
		Foreground(th.StatusFg).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var middle string
	if s.errMsg != "" {
		errStyle := sectionStyle.Foreground(th.Error)
		middle = errStyle.Render(s.errMsg)
	} else {
		where := s.cursor
		if s.label != "" {
			where += "  " + s.label
		}
		middle = sectionStyle.Render(where)
	}

	left := mode + middle

	var parts []string
	if s.notice != "" {
		parts = append(parts, s.notice)
	}
	if s.group != "" {
		parts = append(parts, "group "+s.group)
	}
	if s.selected > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", s.selected))
	}
	if s.backend != "" {
		parts = append(parts, s.backend)
	}
	right := ""
	if len(parts) > 0 {
		right = sectionStyle.Foreground(th.Dim).Render(strings.Join(parts, " │ "))
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
