package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/labtracker/internal/persist"
	"github.com/pfassina/labtracker/internal/theme"
)

// SetupResult is returned by RunSetup.
type SetupResult struct {
	DataDir   string
	Backend   persist.Kind
	Cancelled bool
}

type setupModel struct {
	input   textinput.Model
	backend int
	err     string
	done    bool
	quit    bool
}

func newSetupModel() setupModel {
	ti := textinput.New()
	ti.Placeholder = displayDefault()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return setupModel{input: ti}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			expanded := ExpandHome(m.path())
			if err := validateDataDir(expanded); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit

		case "tab":
			m.backend = (m.backend + 1) % len(persist.Kinds)
			return m, nil

		case "shift+tab":
			m.backend = (m.backend + len(persist.Kinds) - 1) % len(persist.Kinds)
			return m, nil

		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m setupModel) path() string {
	if p := strings.TrimSpace(m.input.Value()); p != "" {
		return p
	}
	return displayDefault()
}

func (m setupModel) View() string {
	th := theme.DefaultTheme()
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent).
		Render("Welcome to labtracker")
	dim := lipgloss.NewStyle().Foreground(th.Dim)
	on := lipgloss.NewStyle().Foreground(th.Success).Bold(true)

	var b strings.Builder
	b.WriteString("\n " + title + "\n\n")
	b.WriteString(" Where should the inventory be stored?\n\n")
	b.WriteString("   " + m.input.View() + "\n\n")

	b.WriteString(" Storage: ")
	for i, k := range persist.Kinds {
		if i == m.backend {
			b.WriteString(on.Render("[" + string(k) + "]"))
		} else {
			b.WriteString(dim.Render(" " + string(k) + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(th.Error)
		b.WriteString(" " + errStyle.Render(m.err) + "\n\n")
	}

	b.WriteString(" " + dim.Render("Enter to confirm, Tab to change storage, Esc to cancel") + "\n")
	return b.String()
}

// validateDataDir checks that a path is usable as the data directory.
func validateDataDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	// The directory is created on first start; its parent must already exist.
	parent := filepath.Dir(path)
	pinfo, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("parent directory %s does not exist", parent)
	}
	if !pinfo.IsDir() {
		return fmt.Errorf("%s is not a directory", parent)
	}
	return nil
}

// RunSetup runs the first-run TUI prompt and saves the chosen data
// directory and backend to config.toml.
func RunSetup() (SetupResult, error) {
	p := tea.NewProgram(newSetupModel())
	final, err := p.Run()
	if err != nil {
		return SetupResult{}, err
	}

	fm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected model type from setup wizard")
	}
	if fm.quit || !fm.done {
		return SetupResult{Cancelled: true}, nil
	}

	res := SetupResult{
		DataDir: ExpandHome(fm.path()),
		Backend: persist.Kinds[fm.backend],
	}
	if err := SaveFile(res.DataDir, res.Backend); err != nil {
		return SetupResult{}, fmt.Errorf("saving config: %w", err)
	}
	return res, nil
}

// displayDefault is the default data directory with the home prefix
// shortened to ~.
func displayDefault() string {
	dir := DefaultDataDir()
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(dir, home+string(os.PathSeparator)) {
		return "~" + dir[len(home):]
	}
	return dir
}
