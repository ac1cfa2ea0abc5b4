package models

import "time"

// SendRecord веде append-only журнал надсилань для rate limit.
// Використовується лише в агрегаті (кількість за вікно); окремі
// записи ніколи не оновлюються й не видаляються.
type SendRecord struct {
	ID     uint      `gorm:"primaryKey"`
	UserID string    `gorm:"type:uuid;not null;index:idx_send_records_user_time"`
	SentAt time.Time `gorm:"not null;index:idx_send_records_user_time"`
	Length int       `gorm:"not null"`
}
