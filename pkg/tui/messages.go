package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weftdev/weft/pkg/controllers"
)

// Messages posted into the bubbletea loop from the generator goroutine.

// stateMsg carries a fresh generator state snapshot.
type stateMsg struct {
	State controllers.State
}

// noticeMsg carries a transient user-visible notification. FromUpdates
// marks notices delivered over the generator update channel; only those
// re-arm the channel read.
type noticeMsg struct {
	Notice      controllers.Notification
	FromUpdates bool
}

// clearNoticeMsg hides the current notification again.
type clearNoticeMsg struct{}

// splashDoneMsg ends the splash screen.
type splashDoneMsg struct{}

// waitForUpdate blocks on the generator update channel and feeds the next
// message into the event loop. Re-issued after every received message.
func waitForUpdate(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
