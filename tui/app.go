package tui

import (
	"bytes"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spellcast/logger"
	"spellcast/room"
)

const rosterWidth = 24

type screen int

const (
	screenName screen = iota
	screenChat
)

// App is the root bubbletea model: a name prompt when the user is
// unconfigured, then the chat screen composed of roster, feed, input,
// and status panels.
type App struct {
	sender room.Sender
	room   *room.Room
	screen screen

	roster    Panel
	feed      Panel
	input     Panel
	nameInput Panel
	status    Panel

	width, height int
}

// NewApp builds the root model. A non-empty name joins the room right
// away; otherwise the app opens on the name prompt and joins when one is
// submitted.
func NewApp(name string, sender room.Sender) *App {
	a := &App{
		sender:    sender,
		screen:    screenName,
		roster:    NewRosterPanel(),
		feed:      NewFeedPanel(),
		input:     NewInputPanel("Speak your mind..."),
		nameInput: NewInputPanel("Username"),
		status:    NewStatusBar(),
	}
	if strings.TrimSpace(name) != "" {
		a.join(name)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.recalcLayout()
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		p, cmd := a.activeInput().Update(msg)
		a.setActiveInput(p)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		p, cmd := a.feed.Update(msg)
		a.feed = p
		cmds = append(cmds, cmd)

	case InputSubmitMsg:
		if a.screen == screenName {
			if strings.TrimSpace(msg.Text) != "" {
				a.join(msg.Text)
			}
			return a, nil
		}
		if err := a.room.Submit(msg.Text); err != nil {
			logger.Warn("message not sent", "err", err)
			a.setStatus("message not sent: " + err.Error())
		}
		// No local echo: the entry appears when the server reflects it.

	case FrameMsg:
		if a.room == nil {
			return a, nil
		}
		changed, err := a.room.HandleRaw(msg.Text)
		if err != nil {
			a.setStatus("dropped a malformed frame")
			return a, nil
		}
		if changed {
			a.refresh()
		}

	case ChannelUpMsg:
		if a.room != nil && msg.Attempt > 0 {
			if err := a.room.Register(); err != nil {
				logger.Warn("re-register failed", "err", err)
			}
		}
		a.setStatus("connected")

	case ChannelDownMsg:
		a.setStatus("connection lost, redialing...")

	case StatusMsg, LogLineMsg:
		p, _ := a.status.Update(msg)
		a.status = p

	default:
		p, cmd := a.activeInput().Update(msg)
		a.setActiveInput(p)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	if a.screen == screenName {
		prompt := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("SpellCast Chat"),
			"",
			"Choose a display name, then press Enter.",
			"",
			a.nameInput.View(),
		)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, prompt)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SpellCast Chat"),
		a.feed.View(),
		a.input.View(),
		a.status.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, a.roster.View(), main)
}

// join creates the room, which announces the user on the channel, and
// switches to the chat screen.
func (a *App) join(name string) {
	a.room = room.New(strings.TrimSpace(name), a.sender)
	a.screen = screenChat
	a.setStatus("joined as " + a.room.Self())
	a.refresh()
}

// refresh projects the room state into the display panels.
func (a *App) refresh() {
	if a.room == nil {
		return
	}
	p, _ := a.roster.Update(rosterMsg{profiles: a.room.Roster()})
	a.roster = p
	p, _ = a.feed.Update(feedMsg{entries: a.room.Messages(), roster: a.room.Roster()})
	a.feed = p
}

func (a *App) setStatus(text string) {
	p, _ := a.status.Update(StatusMsg{Text: text})
	a.status = p
}

func (a *App) activeInput() Panel {
	if a.screen == screenName {
		return a.nameInput
	}
	return a.input
}

func (a *App) setActiveInput(p Panel) {
	if a.screen == screenName {
		a.nameInput = p
	} else {
		a.input = p
	}
}

func (a *App) recalcLayout() {
	const titleH, inputH, statusH = 1, 1, 1

	mainW := max(a.width-rosterWidth, 20)
	feedH := max(a.height-titleH-inputH-statusH, 1)

	a.roster.SetSize(rosterWidth, a.height)
	a.feed.SetSize(mainW, feedH)
	a.input.SetSize(mainW, inputH)
	a.status.SetSize(mainW, statusH)
	a.nameInput.SetSize(min(a.width-4, 48), 1)
}

// LogWriter adapts a running program into an io.Writer for the logger,
// sending one LogLineMsg per line.
type LogWriter struct {
	Program *tea.Program
}

func (w LogWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.Program.Send(LogLineMsg{Line: string(line)})
	}
	return len(p), nil
}
