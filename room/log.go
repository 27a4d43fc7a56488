package room

import "spellcast/protocol"

// Log is the append-only chat history. Entries arrive in server order and
// are never edited, removed, or capped.
type Log struct {
	entries []protocol.Entry
}

// Append records one entry at the tail.
func (l *Log) Append(e protocol.Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns the history oldest-first. The slice is shared, not
// copied; callers read it and let go.
func (l *Log) Entries() []protocol.Entry {
	return l.entries
}

// Len reports how many entries the log holds.
func (l *Log) Len() int {
	return len(l.entries)
}
