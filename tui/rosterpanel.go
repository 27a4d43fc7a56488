package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"spellcast/room"
)

// RosterPanel shows who is in the room as a scrollable card list.
type RosterPanel struct {
	viewport viewport.Model
	profiles []room.Profile
	width    int
}

// NewRosterPanel creates an empty roster panel.
func NewRosterPanel() *RosterPanel {
	vp := viewport.New(0, 0)
	vp.SetContent(RenderRoster(nil, 0))
	return &RosterPanel{viewport: vp}
}

func (p *RosterPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterMsg:
		p.profiles = msg.profiles
		p.viewport.SetContent(RenderRoster(p.profiles, p.width))
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *RosterPanel) View() string {
	return p.viewport.View()
}

func (p *RosterPanel) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(RenderRoster(p.profiles, p.width))
}
