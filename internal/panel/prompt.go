package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/labtracker/internal/theme"
)

// PromptResultMsg is sent when the prompt is confirmed. Confirm prompts
// report "yes".
type PromptResultMsg struct {
	Value string
}

// PromptCancelledMsg is sent when the prompt is dismissed.
type PromptCancelledMsg struct{}

type promptKind int

const (
	promptText promptKind = iota
	promptConfirm
	promptAlert
)

// Prompt is a centered overlay dialog: a text input, a yes/no question or
// a blocking alert.
type Prompt struct {
	input   textinput.Model
	kind    promptKind
	title   string
	errMsg  string
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewPrompt() Prompt {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return Prompt{input: ti}
}

func (p *Prompt) SetTheme(th *theme.Theme) { p.theme = th }

// Show opens a text prompt pre-filled with value.
func (p *Prompt) Show(title, value string) {
	p.open(promptText, title)
	p.input.Placeholder = ""
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.input.Focus()
}

// ShowConfirm opens a yes/no question.
func (p *Prompt) ShowConfirm(question string) {
	p.open(promptConfirm, question)
	p.input.Blur()
}

// ShowAlert opens a message that blocks until dismissed.
func (p *Prompt) ShowAlert(message string) {
	p.open(promptAlert, message)
	p.input.Blur()
}

func (p *Prompt) open(kind promptKind, title string) {
	p.visible = true
	p.kind = kind
	p.title = title
	p.errMsg = ""
}

func (p *Prompt) Hide() {
	p.visible = false
	p.errMsg = ""
	p.input.Blur()
}

// SetError keeps a text prompt open with a validation message.
func (p *Prompt) SetError(msg string) {
	p.errMsg = msg
}

func (p Prompt) Visible() bool {
	return p.visible
}

// Alerting reports whether the prompt is showing an alert.
func (p Prompt) Alerting() bool {
	return p.visible && p.kind == promptAlert
}

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	km, ok := msg.(tea.KeyMsg)
	switch p.kind {
	case promptAlert:
		if ok && (km.String() == "enter" || km.String() == "esc" || km.String() == " ") {
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
		return p, nil

	case promptConfirm:
		if !ok {
			return p, nil
		}
		switch km.String() {
		case "y", "Y", "enter":
			p.visible = false
			return p, func() tea.Msg { return PromptResultMsg{Value: "yes"} }
		case "n", "N", "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
		return p, nil
	}

	if ok {
		switch km.String() {
		case "enter":
			// The prompt stays open; the app hides it once the value is accepted.
			value := strings.TrimSpace(p.input.Value())
			return p, func() tea.Msg { return PromptResultMsg{Value: value} }

		case "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
		p.errMsg = ""
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	th := p.theme

	width := p.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	accent := th.Accent
	if p.kind == promptAlert {
		accent = th.Error
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	dimStyle := lipgloss.NewStyle().
		Foreground(th.Dim)

	var lines []string
	lines = append(lines, titleStyle.Render(p.title))
	switch p.kind {
	case promptText:
		lines = append(lines, p.input.View())
		if p.errMsg != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(th.Error).Render(p.errMsg))
		}
		lines = append(lines, "", dimStyle.Render("Enter to confirm, Esc to cancel"))
	case promptConfirm:
		lines = append(lines, "", dimStyle.Render("y to confirm, n or Esc to cancel"))
	case promptAlert:
		lines = append(lines, "", dimStyle.Render("Enter to dismiss"))
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (p *Prompt) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width/2 - 8
}
