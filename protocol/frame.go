// Package protocol implements the SpellCast wire format.
//
// Every websocket text message is one JSON frame:
//
//	{"messageType": "users", "dataArray": ["morgana", "edmund"]}
//	{"messageType": "register", "data": "morgana"}
//	{"messageType": "message", "data": "{\"from\":\"morgana\",\"message\":\"hi\"}"}
//
// A message frame nests a second JSON document in its data field. Both
// layers decode independently: a frame can be well-formed while its
// nested entry is not.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies a frame type on the wire.
type Kind string

const (
	KindUsers    Kind = "users"    // roster snapshot, names in dataArray
	KindRegister Kind = "register" // announce a user, name in data
	KindMessage  Kind = "message"  // chat entry, JSON-encoded Entry in data
)

// ErrMalformed reports wire text that does not decode to a known shape.
var ErrMalformed = errors.New("malformed frame")

// Frame is one wire message, in either direction.
type Frame struct {
	Kind  Kind     `json:"messageType"`
	Names []string `json:"dataArray,omitempty"`
	Data  string   `json:"data,omitempty"`
}

// Entry is the chat payload nested inside a message frame's data field.
type Entry struct {
	Sender string `json:"from"`
	Body   string `json:"message"`
}

// Encode renders f as wire text.
func Encode(f Frame) (string, error) {
	if !validKind(f.Kind) {
		return "", fmt.Errorf("encode frame: unknown kind %q", f.Kind)
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	return string(b), nil
}

// Decode parses wire text into a Frame. The nested payload of a message
// frame stays opaque; hand Frame.Data to DecodeEntry separately.
func Decode(text string) (Frame, error) {
	var f Frame
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !validKind(f.Kind) {
		return Frame{}, fmt.Errorf("%w: unknown messageType %q", ErrMalformed, f.Kind)
	}
	return f, nil
}

// EncodeEntry renders a chat entry as the data payload of a message frame.
func EncodeEntry(e Entry) (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode entry: %w", err)
	}
	return string(b), nil
}

// DecodeEntry parses the nested payload of a message frame. An entry
// without a sender cannot be attributed and is rejected.
func DecodeEntry(data string) (Entry, error) {
	var e Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if e.Sender == "" {
		return Entry{}, fmt.Errorf("%w: entry has no sender", ErrMalformed)
	}
	return e, nil
}

func validKind(k Kind) bool {
	switch k {
	case KindUsers, KindRegister, KindMessage:
		return true
	}
	return false
}
