// Package bus provides the in-process event relay between the channel
// service and the chat UI.
package bus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event.
type EventType string

const (
	// EventFrameReceived carries one raw wire message from the server.
	EventFrameReceived EventType = "frame.received"
	// EventChannelUp fires when the channel re-establishes its connection.
	EventChannelUp EventType = "channel.up"
	// EventChannelDown fires when the connection drops.
	EventChannelDown EventType = "channel.down"
)

// Event represents a bus event.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates a new event with a fresh ID and the serialized payload.
func NewEvent(eventType EventType, source string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Data:      raw,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e *Event) ParseData(v any) error {
	if e.Data == nil {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// FramePayload is the payload of EventFrameReceived.
type FramePayload struct {
	Text string `json:"text"`
}

// StatusPayload is the payload of EventChannelUp and EventChannelDown.
type StatusPayload struct {
	Channel string `json:"channel"`
	Attempt int    `json:"attempt,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
