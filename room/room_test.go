package room

import (
	"errors"
	"testing"

	"spellcast/protocol"
)

// fakeSender records outbound frames and optionally fails every send.
type fakeSender struct {
	frames []string
	err    error
}

func (s *fakeSender) Send(text string) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, text)
	return nil
}

func mustWire(t *testing.T, f protocol.Frame) string {
	t.Helper()
	wire, err := protocol.Encode(f)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return wire
}

func TestNewSendsRegister(t *testing.T) {
	s := &fakeSender{}
	New("morgana", s)

	if len(s.frames) != 1 {
		t.Fatalf("New() sent %d frames, want 1", len(s.frames))
	}
	f, err := protocol.Decode(s.frames[0])
	if err != nil {
		t.Fatalf("Decode(register) error = %v", err)
	}
	if f.Kind != protocol.KindRegister || f.Data != "morgana" {
		t.Errorf("register frame = %+v, want kind register with data morgana", f)
	}
}

func TestNewSurvivesRegisterFailure(t *testing.T) {
	s := &fakeSender{err: errors.New("socket down")}
	r := New("morgana", s)

	changed, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindUsers, Names: []string{"edmund"}}))
	if err != nil {
		t.Fatalf("HandleRaw() error = %v", err)
	}
	if !changed {
		t.Error("HandleRaw() changed = false after failed register, want true")
	}
}

func TestHandleUsersReplacesRoster(t *testing.T) {
	r := New("morgana", &fakeSender{})

	if _, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindUsers, Names: []string{"alina", "bo"}})); err != nil {
		t.Fatalf("HandleRaw(first users) error = %v", err)
	}
	changed, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindUsers, Names: []string{"cyrus"}}))
	if err != nil {
		t.Fatalf("HandleRaw(second users) error = %v", err)
	}
	if !changed {
		t.Error("HandleRaw() changed = false, want true")
	}

	roster := r.Roster()
	if len(roster) != 1 || roster[0].Name != "cyrus" {
		t.Errorf("Roster() = %v, want exactly [cyrus]", roster)
	}
}

func TestHandleMessageAppends(t *testing.T) {
	r := New("morgana", &fakeSender{})

	data, err := protocol.EncodeEntry(protocol.Entry{Sender: "edmund", Body: "greetings"})
	if err != nil {
		t.Fatalf("EncodeEntry() error = %v", err)
	}
	changed, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindMessage, Data: data}))
	if err != nil {
		t.Fatalf("HandleRaw() error = %v", err)
	}
	if !changed {
		t.Error("HandleRaw() changed = false, want true")
	}

	msgs := r.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Messages() has %d entries, want 1", len(msgs))
	}
	if msgs[0].Sender != "edmund" || msgs[0].Body != "greetings" {
		t.Errorf("Messages()[0] = %+v", msgs[0])
	}
}

func TestHandleMalformedFrameDropped(t *testing.T) {
	r := New("morgana", &fakeSender{})

	changed, err := r.HandleRaw("complete garbage")
	if err == nil {
		t.Error("HandleRaw(garbage) error = nil, want error")
	}
	if changed {
		t.Error("HandleRaw(garbage) changed = true, want false")
	}
	if len(r.Messages()) != 0 {
		t.Errorf("log has %d entries after garbage, want 0", len(r.Messages()))
	}

	// The room keeps working after a bad frame.
	changed, err = r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindUsers, Names: []string{"alina"}}))
	if err != nil || !changed {
		t.Errorf("HandleRaw(valid after garbage) = (%v, %v), want (true, nil)", changed, err)
	}
}

func TestHandleMessageBadPayloadDropped(t *testing.T) {
	r := New("morgana", &fakeSender{})

	changed, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindMessage, Data: "not nested json"}))
	if err == nil {
		t.Error("HandleRaw(bad payload) error = nil, want error")
	}
	if changed {
		t.Error("HandleRaw(bad payload) changed = true, want false")
	}
	if len(r.Messages()) != 0 {
		t.Errorf("Messages() has %d entries, want 0", len(r.Messages()))
	}
}

func TestHandleInboundRegisterIgnored(t *testing.T) {
	r := New("morgana", &fakeSender{})

	changed, err := r.HandleRaw(mustWire(t, protocol.Frame{Kind: protocol.KindRegister, Data: "edmund"}))
	if err != nil {
		t.Fatalf("HandleRaw(register) error = %v", err)
	}
	if changed {
		t.Error("HandleRaw(register) changed = true, want false")
	}
	if len(r.Roster()) != 0 || len(r.Messages()) != 0 {
		t.Error("inbound register mutated room state")
	}
}

func TestSubmitWrapsEntry(t *testing.T) {
	s := &fakeSender{}
	r := New("morgana", s)

	if err := r.Submit("the moon is full"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(s.frames) != 2 {
		t.Fatalf("sender saw %d frames, want 2 (register + message)", len(s.frames))
	}

	f, err := protocol.Decode(s.frames[1])
	if err != nil {
		t.Fatalf("Decode(outbound) error = %v", err)
	}
	if f.Kind != protocol.KindMessage {
		t.Fatalf("outbound kind = %q, want message", f.Kind)
	}
	e, err := protocol.DecodeEntry(f.Data)
	if err != nil {
		t.Fatalf("DecodeEntry(outbound) error = %v", err)
	}
	if e.Sender != "morgana" || e.Body != "the moon is full" {
		t.Errorf("outbound entry = %+v", e)
	}
}

func TestSubmitBlankIsNoop(t *testing.T) {
	s := &fakeSender{}
	r := New("morgana", s)

	for _, input := range []string{"", "   ", "\t"} {
		if err := r.Submit(input); err != nil {
			t.Errorf("Submit(%q) error = %v, want nil", input, err)
		}
	}
	if len(s.frames) != 1 {
		t.Errorf("sender saw %d frames, want only the register", len(s.frames))
	}
}

func TestSubmitDoesNotEchoLocally(t *testing.T) {
	r := New("morgana", &fakeSender{})

	if err := r.Submit("hello"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(r.Messages()) != 0 {
		t.Errorf("Messages() has %d entries after Submit, want 0", len(r.Messages()))
	}
}

func TestSubmitSendFailure(t *testing.T) {
	s := &fakeSender{}
	r := New("morgana", s)
	s.err = errors.New("socket down")

	if err := r.Submit("hello"); err == nil {
		t.Error("Submit() error = nil with failing sender, want error")
	}
	if len(r.Messages()) != 0 {
		t.Error("failed Submit mutated the log")
	}
}
