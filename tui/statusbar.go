package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusBar is a one-line panel showing the latest status or log line.
type StatusBar struct {
	text  string
	width int
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

func (p *StatusBar) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		p.text = msg.Text
	case LogLineMsg:
		p.text = strings.TrimRight(msg.Line, "\n")
	}
	return p, nil
}

func (p *StatusBar) View() string {
	return statusStyle.Render(truncate(p.text, p.width))
}

func (p *StatusBar) SetSize(width, _ int) {
	p.width = width
}
