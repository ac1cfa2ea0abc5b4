package broker

import "duochat/backend/internal/models"

// Delivery pushes a notification to a remote connection handle.
//
// Send makes exactly one attempt. It returns (true, nil) when the
// notification was handed to the connection, (false, nil) when the
// connection is stale (gone, closed, or hopelessly backed up) and an error
// only on unexpected transport failure. No internal retries.
type Delivery interface {
	Send(connectionID string, msg models.OutgoingMessage) (bool, error)
}
