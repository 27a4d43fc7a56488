// Package room holds the chat room state: who is present, what has been
// said, and how inbound frames and local input change that state.
package room

import (
	"fmt"
	"strings"

	"spellcast/logger"
	"spellcast/protocol"
)

// Sender is the outbound half of a channel service. Send ships one wire
// frame and reports failure synchronously.
type Sender interface {
	Send(text string) error
}

// Room is the chat room state machine. It is not safe for concurrent use;
// drive it from a single goroutine (the TUI update loop qualifies).
type Room struct {
	self   string
	sender Sender
	roster []Profile
	log    Log
}

// New creates a room for the named local user and announces them on the
// channel. A failed announcement is logged and swallowed: the room works
// either way, the server just never learns the name until a reconnect.
func New(self string, sender Sender) *Room {
	r := &Room{self: self, sender: sender}
	if err := r.Register(); err != nil {
		logger.Warn("register not delivered", "user", self, "err", err)
	}
	return r
}

// Register announces the local user on the channel. New calls it once;
// the hosting app calls it again after the channel reconnects.
func (r *Room) Register() error {
	wire, err := protocol.Encode(protocol.Frame{Kind: protocol.KindRegister, Data: r.self})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := r.sender.Send(wire); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	logger.Debug("register sent", "user", r.self)
	return nil
}

// HandleRaw folds one inbound wire message into the room state and
// reports whether the state changed (meaning any view of it is stale).
// Malformed input at either layer is dropped with a warning; the room
// keeps its previous state and stays usable.
func (r *Room) HandleRaw(text string) (bool, error) {
	frame, err := protocol.Decode(text)
	if err != nil {
		logger.Warn("dropping frame", "err", err)
		return false, err
	}

	switch frame.Kind {
	case protocol.KindUsers:
		r.roster = Rebuild(frame.Names)
		logger.Debug("roster replaced", "size", len(r.roster))
		return true, nil

	case protocol.KindMessage:
		entry, err := protocol.DecodeEntry(frame.Data)
		if err != nil {
			logger.Warn("dropping message frame", "err", err)
			return false, err
		}
		r.log.Append(entry)
		logger.Debug("message appended", "from", entry.Sender, "total", r.log.Len())
		return true, nil

	default:
		// register frames travel client to server; ignore echoes.
		return false, nil
	}
}

// Submit sends composed input as a chat message. Blank input is a no-op.
// The entry is not added to the local log; it shows up when the server
// reflects it back like any other message.
func (r *Room) Submit(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	data, err := protocol.EncodeEntry(protocol.Entry{Sender: r.self, Body: input})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	wire, err := protocol.Encode(protocol.Frame{Kind: protocol.KindMessage, Data: data})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.sender.Send(wire); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// Self returns the local user's name.
func (r *Room) Self() string { return r.self }

// Roster returns the current occupants in server order.
func (r *Room) Roster() []Profile { return r.roster }

// Messages returns the chat history oldest-first.
func (r *Room) Messages() []protocol.Entry { return r.log.Entries() }
