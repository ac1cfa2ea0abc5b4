package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статуси користувача. Легальність переходів контролює broker,
// storage пише статус безумовно.
const (
	StatusIdle      = "IDLE"
	StatusSearching = "SEARCHING"
	StatusChatting  = "CHATTING"
)

// Connection представляє одне живе транспортне з'єднання.
// Рядок створюється при підключенні та видаляється при відключенні;
// UserID, стабільний анонімний UUID, клієнт зберігає між реконектами.
type Connection struct {
	ConnectionID string `gorm:"primaryKey" json:"connection_id"`
	UserID       string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Status       string `gorm:"type:varchar(20);not null;default:IDLE;index"`
	// MatchedWith тримає ConnectionID партнера під час активного чату.
	MatchedWith  string
	ConnectedAt  time.Time `gorm:"not null;autoCreateTime"`
	LastActivity time.Time `gorm:"not null;index;autoUpdateTime"`
}

// BeforeCreate — хук GORM: генерує анонімний UUID, якщо клієнт
// не приніс власний (перше підключення без токена).
func (c *Connection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.UserID == "" {
		c.UserID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusIdle
	}
	return
}
