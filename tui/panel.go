// Package tui renders the chat room in the terminal.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"spellcast/protocol"
	"spellcast/room"
)

// Panel is a composable TUI region with its own state, update logic, and
// view. The root App model routes messages to panels without knowing
// their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// FrameMsg carries one raw wire message from the server into the update
// loop.
type FrameMsg struct{ Text string }

// InputSubmitMsg is emitted when the user presses Enter in the input panel.
type InputSubmitMsg struct{ Text string }

// ChannelUpMsg reports that the transport reconnected.
type ChannelUpMsg struct{ Attempt int }

// ChannelDownMsg reports that the transport dropped; the channel keeps
// redialing on its own.
type ChannelDownMsg struct{ Reason string }

// StatusMsg replaces the status line.
type StatusMsg struct{ Text string }

// LogLineMsg carries a single intercepted log line.
type LogLineMsg struct{ Line string }

// rosterMsg replaces the roster panel contents.
type rosterMsg struct{ profiles []room.Profile }

// feedMsg replaces the feed panel contents. It carries the roster too so
// senders resolve against the same snapshot they arrived with.
type feedMsg struct {
	entries []protocol.Entry
	roster  []room.Profile
}
