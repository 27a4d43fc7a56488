// Package channel provides transports that move wire frames between the
// chat client and a SpellCast server.
package channel

import "context"

// Channel is a frame transport. Start begins delivering inbound traffic
// as bus events; Send ships one outbound frame and reports failure
// synchronously. Implementations never retry a failed Send.
type Channel interface {
	// Name returns the transport name (e.g. "websocket").
	Name() string

	// Start connects and begins reading. It returns once the transport
	// is live; inbound frames arrive as bus events after that.
	Start(ctx context.Context) error

	// Stop gracefully shuts the transport down.
	Stop() error

	// Send writes one wire frame to the server.
	Send(text string) error
}
