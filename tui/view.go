package tui

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spellcast/protocol"
	"spellcast/room"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).Padding(0, 1)
	sidebarTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).Padding(0, 1)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	mediaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// avatarPalette holds the monogram colors. A name always hashes to the
// same color, so avatars look stable across redraws and clients.
var avatarPalette = []lipgloss.Color{"1", "2", "3", "4", "5", "6", "9", "10", "11", "12", "13", "14"}

// monogram is the terminal stand-in for a profile's avatar image: the
// first rune of the name, tinted by a hash of the avatar URL.
func monogram(p room.Profile) string {
	initial := "?"
	if r := []rune(p.Name); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}
	color := avatarPalette[paletteIndex(p.AvatarURL)]
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("(" + initial + ")")
}

func paletteIndex(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % uint32(len(avatarPalette)))
}

// RenderRoster projects the roster into sidebar profile cards: monogram,
// name, subtitle. Pure; safe to call on every redraw.
func RenderRoster(profiles []room.Profile, width int) string {
	var b strings.Builder
	b.WriteString(sidebarTitle.Render("☠ Users"))
	b.WriteString("\n\n")

	if len(profiles) == 0 {
		b.WriteString(subtleStyle.Render("nobody here yet"))
		return b.String()
	}

	for i, p := range profiles {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(monogram(p))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render(truncate(p.Name, width-6)))
		b.WriteString("\n  ")
		b.WriteString(subtleStyle.Render("Summoned..."))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFeed projects the chat history into message cards. Senders are
// resolved against the roster; an unknown sender gets a derived stand-in
// profile rather than losing the message.
func RenderFeed(entries []protocol.Entry, roster []room.Profile, width int) string {
	if len(entries) == 0 {
		return subtleStyle.Render("No messages yet. Say hi!")
	}

	cards := make([]string, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, renderEntry(e, roster, width))
	}
	return strings.Join(cards, "\n")
}

// renderEntry is one message card: a header with the sender's avatar and
// name, then the body.
func renderEntry(e protocol.Entry, roster []room.Profile, width int) string {
	p, ok := room.Resolve(roster, e.Sender)
	if !ok {
		p = room.Fallback(e.Sender)
	}
	header := monogram(p) + " " + nameStyle.Render(p.Name)
	return header + "\n  " + renderBody(e.Body, width-2)
}

// renderBody classifies the payload: a body ending in ".gif" renders as a
// media card, anything else as wrapped plain text. The suffix check is
// exact and case-sensitive.
func renderBody(body string, width int) string {
	if strings.HasSuffix(body, ".gif") {
		return mediaStyle.Render("🖼 " + body)
	}
	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(body)
	}
	return body
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
