package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputPanel is a single-line composer. Enter on empty input is swallowed;
// a non-empty line is cleared and handed to the app as an InputSubmitMsg.
type InputPanel struct {
	input textinput.Model
	width int
}

// NewInputPanel creates an input panel with the given placeholder.
func NewInputPanel(placeholder string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.Focus()
	return &InputPanel{input: ti}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		text := p.input.Value()
		if text == "" {
			return p, nil
		}
		p.input.Reset()
		return p, func() tea.Msg { return InputSubmitMsg{Text: text} }
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, _ int) {
	p.width = width
	p.input.Width = width - len(p.input.Prompt) - 1
}
