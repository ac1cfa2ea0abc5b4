package models

import "time"

// QueueEntry is a user waiting for a partner. At most one entry exists per
// user: re-entering search refreshes JoinedAt and ConnectionID instead of
// inserting a duplicate. The entry disappears when the user is matched,
// cancels the search, or disconnects.
type QueueEntry struct {
	UserID       string    `gorm:"type:uuid;primaryKey"`
	ConnectionID string    `gorm:"not null"`
	JoinedAt     time.Time `gorm:"not null;index"`
}
