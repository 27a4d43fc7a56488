package bus

import (
	"context"
	"fmt"
	"testing"

	"github.com/tidwall/gjson"
)

func TestPublishPreservesOrder(t *testing.T) {
	b := NewBus(64)

	var got []string
	b.Subscribe(EventFrameReceived, func(_ context.Context, ev *Event) {
		var p FramePayload
		if err := ev.ParseData(&p); err != nil {
			t.Errorf("ParseData() error = %v", err)
			return
		}
		got = append(got, p.Text)
	})

	const n = 50
	for i := 0; i < n; i++ {
		ev, err := NewEvent(EventFrameReceived, "test", FramePayload{Text: fmt.Sprintf("frame-%d", i)})
		if err != nil {
			t.Fatalf("NewEvent() error = %v", err)
		}
		b.Publish(ev)
	}
	b.Close() // drains, then the handler's writes are visible

	if len(got) != n {
		t.Fatalf("delivered %d events, want %d", len(got), n)
	}
	for i, text := range got {
		if want := fmt.Sprintf("frame-%d", i); text != want {
			t.Fatalf("got[%d] = %q, want %q", i, text, want)
		}
	}
}

func TestDispatchFiltersByType(t *testing.T) {
	b := NewBus(16)

	var ups, downs int
	b.Subscribe(EventChannelUp, func(_ context.Context, _ *Event) { ups++ })
	b.Subscribe(EventChannelDown, func(_ context.Context, _ *Event) { downs++ })

	up, _ := NewEvent(EventChannelUp, "test", nil)
	down, _ := NewEvent(EventChannelDown, "test", nil)
	b.Publish(up)
	b.Publish(down)
	b.Publish(down)
	b.Close()

	if ups != 1 || downs != 2 {
		t.Errorf("ups = %d, downs = %d, want 1 and 2", ups, downs)
	}
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := NewBus(16)

	var delivered int
	b.Subscribe(EventFrameReceived, func(_ context.Context, _ *Event) {
		panic("bad subscriber")
	})
	b.Subscribe(EventFrameReceived, func(_ context.Context, _ *Event) {
		delivered++
	})

	for i := 0; i < 3; i++ {
		ev, _ := NewEvent(EventFrameReceived, "test", FramePayload{Text: "x"})
		b.Publish(ev)
	}
	b.Close()

	if delivered != 3 {
		t.Errorf("healthy subscriber saw %d events, want 3", delivered)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus(16)

	var delivered int
	id := b.Subscribe(EventFrameReceived, func(_ context.Context, _ *Event) { delivered++ })

	ev, _ := NewEvent(EventFrameReceived, "test", nil)
	b.Publish(ev)
	b.Unsubscribe(id)
	ev2, _ := NewEvent(EventFrameReceived, "test", nil)
	b.Publish(ev2)
	b.Close()

	if delivered > 1 {
		t.Errorf("delivered = %d after Unsubscribe, want at most 1", delivered)
	}
}

func TestPublishAfterCloseDropped(t *testing.T) {
	b := NewBus(16)
	b.Close()

	ev, _ := NewEvent(EventFrameReceived, "test", nil)
	b.Publish(ev) // must not panic or block
}

func TestNewEventShape(t *testing.T) {
	ev, err := NewEvent(EventFrameReceived, "websocket", FramePayload{Text: `{"messageType":"register"}`})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if ev.ID == "" {
		t.Error("event ID is empty")
	}
	if ev.Source != "websocket" {
		t.Errorf("Source = %q, want websocket", ev.Source)
	}
	if got := gjson.GetBytes(ev.Data, "text").String(); got != `{"messageType":"register"}` {
		t.Errorf("payload text = %q", got)
	}
}
