package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/labtracker/internal/inventory"
)

// inventoryChangedMsg is sent when any session (or the file watcher)
// mutates the shared inventory.
type inventoryChangedMsg struct{ action inventory.Action }

// toastsChangedMsg is sent when a toast appears, expires or pulses.
type toastsChangedMsg struct{}

// storageErrorMsg carries a persistence failure reported outside the
// update loop, such as a failed reload by the file watcher.
type storageErrorMsg struct{ err error }

// noticeExpiredMsg clears the status notice it was scheduled for.
type noticeExpiredMsg struct{ seq int }

const noticeDuration = 3 * time.Second

// notice shows msg in the status bar until noticeDuration passes or a newer
// notice replaces it.
func (a *App) notice(msg string) tea.Cmd {
	a.noticeSeq++
	seq := a.noticeSeq
	a.status.SetNotice(msg)
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// ReportError surfaces a background storage failure as an error toast.
// Safe to call from any goroutine.
func (a *App) ReportError(err error) {
	a.send(storageErrorMsg{err: err})
}
