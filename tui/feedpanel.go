package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"spellcast/protocol"
	"spellcast/room"
)

// FeedPanel shows the chat history in a viewport pinned to the newest
// message.
type FeedPanel struct {
	viewport viewport.Model
	entries  []protocol.Entry
	roster   []room.Profile
	width    int
}

// NewFeedPanel creates an empty feed panel.
func NewFeedPanel() *FeedPanel {
	vp := viewport.New(0, 0)
	vp.SetContent(RenderFeed(nil, nil, 0))
	return &FeedPanel{viewport: vp}
}

func (p *FeedPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg:
		p.entries = msg.entries
		p.roster = msg.roster
		p.viewport.SetContent(RenderFeed(p.entries, p.roster, p.width))
		p.viewport.GotoBottom()
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *FeedPanel) View() string {
	return p.viewport.View()
}

func (p *FeedPanel) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(RenderFeed(p.entries, p.roster, p.width))
}
