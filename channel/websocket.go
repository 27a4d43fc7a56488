package channel

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"spellcast/bus"
	"spellcast/logger"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second

	// Redial backoff doubles from min to max, then stays there.
	redialMin = 1 * time.Second
	redialMax = 30 * time.Second
)

// WebSocket is the production transport: one client connection to the
// chat server. Inbound text frames are published to the bus; a dropped
// connection is redialed with capped backoff until Stop.
type WebSocket struct {
	url string
	bus *bus.Bus

	mu   sync.Mutex
	conn *websocket.Conn

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWebSocket creates a websocket channel for rawURL (ws or wss).
func NewWebSocket(rawURL string, b *bus.Bus) (*WebSocket, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("websocket: parse url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("websocket: unsupported scheme %q in %s", u.Scheme, rawURL)
	}
	return &WebSocket{
		url:  rawURL,
		bus:  b,
		done: make(chan struct{}),
	}, nil
}

func (c *WebSocket) Name() string { return "websocket" }

// Start dials the server and begins the read pump. A failed first dial is
// fatal; drops after that are handled by redialing inside the pump.
func (c *WebSocket) Start(ctx context.Context) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.wg.Add(1)
	go c.readPump(ctx)

	logger.Info("websocket channel started", "url", c.url)
	return nil
}

// Stop performs the close handshake and waits for the pump to exit.
func (c *WebSocket) Stop() error {
	c.stopOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = c.conn.Close()
		}
		c.mu.Unlock()

		c.wg.Wait()
		logger.Info("websocket channel stopped")
	})
	return nil
}

// Send writes one text frame to the server.
func (c *WebSocket) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("websocket: not connected")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("websocket: set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("websocket: write: %w", err)
	}
	return nil
}

func (c *WebSocket) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket: dial %s: %w", c.url, err)
	}
	return conn, nil
}

// readPump owns the inbound side: every text frame becomes a bus event,
// and a dropped connection is redialed until Stop or ctx ends.
func (c *WebSocket) readPump(ctx context.Context) {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.stopping() || ctx.Err() != nil {
				return
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", "err", err)
			}
			c.announce(bus.EventChannelDown, 0, err.Error())
			if !c.redial(ctx) {
				return
			}
			continue
		}

		ev, err := bus.NewEvent(bus.EventFrameReceived, c.Name(), bus.FramePayload{Text: string(data)})
		if err != nil {
			logger.Error("frame event not published", "err", err)
			continue
		}
		c.bus.Publish(ev)
	}
}

// redial reconnects with doubling backoff. It reports false when Stop or
// ctx ends the attempts.
func (c *WebSocket) redial(ctx context.Context) bool {
	backoff := redialMin
	for attempt := 1; ; attempt++ {
		select {
		case <-c.done:
			return false
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}

		conn, err := c.dial()
		if err != nil {
			logger.Warn("websocket redial failed", "attempt", attempt, "err", err)
			backoff = min(backoff*2, redialMax)
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		logger.Info("websocket reconnected", "attempt", attempt)
		c.announce(bus.EventChannelUp, attempt, "")
		return true
	}
}

func (c *WebSocket) stopping() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *WebSocket) announce(t bus.EventType, attempt int, reason string) {
	ev, err := bus.NewEvent(t, c.Name(), bus.StatusPayload{Channel: c.Name(), Attempt: attempt, Reason: reason})
	if err != nil {
		return
	}
	c.bus.Publish(ev)
}
