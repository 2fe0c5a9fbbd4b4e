package ssh

import (
	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/labtracker/internal/app"
	"github.com/pfassina/labtracker/internal/config"
)

// NewHandler returns a Bubble Tea handler for SSH sessions. Every session
// gets its own selection, toasts and undo history over the shared
// inventory in deps.
func NewHandler(cfg config.Config, deps app.Deps) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		d := deps
		d.Session = sess.User() + "@" + sess.RemoteAddr().String()
		// The server's clipboard is useless to a remote user; ask their
		// terminal to copy instead.
		d.Clipboard = func(s string) error {
			_, err := osc52.New(s).WriteTo(sess)
			return err
		}

		a := app.New(cfg, d)
		go func() {
			<-sess.Context().Done()
			a.Close()
		}()

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return a, opts
	}
}
