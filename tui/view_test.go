package tui

import (
	"strings"
	"testing"

	"spellcast/protocol"
	"spellcast/room"
)

func TestRenderRosterShowsProfiles(t *testing.T) {
	profiles := room.Rebuild([]string{"alina", "bogdan"})
	out := RenderRoster(profiles, 24)

	if !strings.Contains(out, "alina") {
		t.Error("roster missing alina")
	}
	if !strings.Contains(out, "bogdan") {
		t.Error("roster missing bogdan")
	}
	if !strings.Contains(out, "Users") {
		t.Error("roster missing header")
	}
	if !strings.Contains(out, "Summoned...") {
		t.Error("roster cards missing subtitle")
	}
}

func TestRenderRosterEmpty(t *testing.T) {
	out := RenderRoster(nil, 24)
	if !strings.Contains(out, "nobody here yet") {
		t.Error("empty roster missing placeholder text")
	}
}

func TestRenderRosterKeepsDuplicates(t *testing.T) {
	profiles := room.Rebuild([]string{"alina", "alina"})
	out := RenderRoster(profiles, 24)
	if got := strings.Count(out, "alina"); got != 2 {
		t.Errorf("duplicate name rendered %d times, want 2", got)
	}
}

func TestRenderFeedEmpty(t *testing.T) {
	out := RenderFeed(nil, nil, 60)
	if !strings.Contains(out, "No messages yet") {
		t.Error("empty feed missing placeholder text")
	}
}

func TestRenderFeedResolvesKnownSender(t *testing.T) {
	roster := room.Rebuild([]string{"alina"})
	entries := []protocol.Entry{{Sender: "alina", Body: "the kettle is on"}}
	out := RenderFeed(entries, roster, 60)

	if !strings.Contains(out, "alina") {
		t.Error("feed missing sender name")
	}
	if !strings.Contains(out, "the kettle is on") {
		t.Error("feed missing body")
	}
}

func TestRenderFeedUnknownSenderStillShown(t *testing.T) {
	entries := []protocol.Entry{{Sender: "strang3r", Body: "boo"}}
	out := RenderFeed(entries, nil, 60)

	if !strings.Contains(out, "strang3r") {
		t.Error("feed dropped a message from an unlisted sender")
	}
	if !strings.Contains(out, "boo") {
		t.Error("feed missing the body of an unlisted sender's message")
	}
}

func TestRenderFeedGifBodies(t *testing.T) {
	roster := room.Rebuild([]string{"alina"})
	entries := []protocol.Entry{
		{Sender: "alina", Body: "party.gif"},
		{Sender: "alina", Body: "party.GIF"},
		{Sender: "alina", Body: "gif"},
	}
	out := RenderFeed(entries, roster, 60)

	if got := strings.Count(out, "🖼"); got != 1 {
		t.Errorf("media cards = %d, want exactly 1 (lowercase .gif only)", got)
	}
	if !strings.Contains(out, "party.GIF") {
		t.Error("uppercase suffix body missing as plain text")
	}
}

func TestMonogramStable(t *testing.T) {
	p := room.Fallback("morgana")
	if monogram(p) != monogram(p) {
		t.Error("monogram is not deterministic for the same profile")
	}
	if !strings.Contains(monogram(p), "M") {
		t.Errorf("monogram = %q, want the initial M", monogram(p))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer name", 8, "a longe…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}
