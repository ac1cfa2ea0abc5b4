package storage

import (
	"context"
	"errors"
	"time"

	"duochat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the transactional state the broker coordinates through. There is
// no in-process shared state between intent invocations; every cross-user
// guarantee (single pairing, atomic teardown) lives behind this interface.
type Storage interface {
	// Session store
	CreateConnection(connectionID, userID string) (*models.Connection, error)
	GetUserByConnectionID(connectionID string) (*models.Connection, error)
	SetUserStatus(userID, status string) error

	// Matchmaking
	AttemptMatch(userID, connectionID string) (*models.MatchResult, error)
	RemoveFromQueue(userID string) error

	// Chat sessions
	GetChatPartner(userID string) (*models.ChatPartner, error)
	EndChat(userID string) (*models.ChatPartner, error)
	HandleDisconnect(connectionID string) (*models.DisconnectResult, error)

	// Rate accounting
	CountRecentSends(userID string, window time.Duration) (int64, error)
	LogSend(userID string, length int) error

	// Moderation
	IsUserBanned(userID string) (bool, error)
	BanUser(userID string, duration time.Duration) error
	SaveComplaint(complaint *models.Complaint) error
	SumRecentComplaintWeight(targetID string, since time.Time) (int64, error)
}

// Service реалізує Storage поверх PostgreSQL (GORM) та Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateConnection реєструє нове з'єднання. Якщо userID порожній,
// BeforeCreate-хук моделі згенерує свіжий анонімний UUID.
func (s *Service) CreateConnection(connectionID, userID string) (*models.Connection, error) {
	conn := models.Connection{
		ConnectionID: connectionID,
		UserID:       userID,
		Status:       models.StatusIdle,
	}
	if err := s.DB.Create(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// GetUserByConnectionID шукає з'єднання. Повертає (nil, nil), якщо рядок
// відсутній: для викликача це "сесія протухла", а не фатальна помилка.
func (s *Service) GetUserByConnectionID(connectionID string) (*models.Connection, error) {
	var conn models.Connection
	err := s.DB.Where("connection_id = ?", connectionID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// SetUserStatus пише статус безумовно. Перевірка легальності
// переходу лежить на broker'і.
func (s *Service) SetUserStatus(userID, status string) error {
	return s.DB.Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":        status,
			"last_activity": time.Now(),
		}).Error
}
