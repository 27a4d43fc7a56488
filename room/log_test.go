package room

import (
	"testing"

	"spellcast/protocol"
)

func TestLogAppendKeepsOrder(t *testing.T) {
	var l Log
	l.Append(protocol.Entry{Sender: "a", Body: "first"})
	l.Append(protocol.Entry{Sender: "b", Body: "second"})
	l.Append(protocol.Entry{Sender: "a", Body: "third"})

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	bodies := []string{"first", "second", "third"}
	for i, e := range l.Entries() {
		if e.Body != bodies[i] {
			t.Errorf("Entries()[%d].Body = %q, want %q", i, e.Body, bodies[i])
		}
	}
}

func TestLogZeroValueUsable(t *testing.T) {
	var l Log
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if len(l.Entries()) != 0 {
		t.Errorf("Entries() = %v, want empty", l.Entries())
	}
}
