package models

import "time"

// ChatSession represents an active 1-on-1 pairing between two users.
// A user appears in at most one session at a time. The row is created by a
// successful match and deleted when either side ends the chat, disconnects,
// or is found stale during a relay attempt.
type ChatSession struct {
	// ChatID is the unique identifier for the session (UUID).
	ChatID string `gorm:"type:uuid;primaryKey"`
	// User1ID is the caller whose match attempt claimed the partner.
	User1ID string `gorm:"type:uuid;not null;index"`
	// User2ID is the claimed partner.
	User2ID string `gorm:"type:uuid;not null;index"`
	// User1ConnectionID and User2ConnectionID are the transport handles the
	// participants held at pairing time. They may go stale; a failed relay
	// to either tears the session down.
	User1ConnectionID string `gorm:"not null"`
	User2ConnectionID string `gorm:"not null"`
	// StartedAt is the timestamp when the pairing was created.
	StartedAt time.Time `gorm:"not null"`
}
