package domain

import "context"

// Channel is the interface every user-surface implementation must
// satisfy. The assistant core only depends on this contract; the
// concrete surface (console, Telegram, ...) lives outside the core.
type Channel interface {
	// ID returns the channel identifier (e.g., "console", "telegram").
	ID() string

	// Start connects the channel and begins listening for messages.
	Start(ctx context.Context) error

	// Stop gracefully disconnects the channel.
	Stop(ctx context.Context) error

	// Send delivers an outbound message through this channel.
	Send(ctx context.Context, msg OutboundMessage) error

	// OnMessage registers a handler for inbound messages.
	OnMessage(handler func(msg InboundMessage))
}
