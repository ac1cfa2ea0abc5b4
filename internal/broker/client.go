package broker

import "duochat/backend/internal/models"

// Client is the interface for a live transport connection handle. It
// abstracts the underlying mechanism so the registry and delivery logic do
// not depend on gorilla/websocket directly, and tests can substitute fakes.
type Client interface {
	// GetConnectionID returns the opaque id of the physical connection.
	GetConnectionID() string

	// GetSendChannel returns the channel through which notifications are
	// pushed to this client. It is a send-only channel; the client's write
	// pump drains it.
	GetSendChannel() chan<- models.OutgoingMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
