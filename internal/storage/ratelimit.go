package storage

import (
	"time"

	"duochat/backend/internal/models"
)

// CountRecentSends рахує надсилання користувача за останнє вікно.
func (s *Service) CountRecentSends(userID string, window time.Duration) (int64, error) {
	var count int64
	err := s.DB.Model(&models.SendRecord{}).
		Where("user_id = ? AND sent_at > ?", userID, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}

// LogSend додає запис у журнал надсилань (append-only).
func (s *Service) LogSend(userID string, length int) error {
	return s.DB.Create(&models.SendRecord{
		UserID: userID,
		SentAt: time.Now(),
		Length: length,
	}).Error
}
