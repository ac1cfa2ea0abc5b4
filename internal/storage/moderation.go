package storage

import (
	"errors"
	"time"

	"duochat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// IsUserBanned перевіряє статус бану в Redis (швидка перевірка).
func (s *Service) IsUserBanned(userID string) (bool, error) {
	key := "ban:" + userID
	status, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// BanUser ставить бан-ключ із TTL. Після закінчення строку ключ
// зникає сам, окремий процес розбану не потрібен.
func (s *Service) BanUser(userID string, duration time.Duration) error {
	key := "ban:" + userID
	return s.Redis.Set(s.Ctx, key, "active", duration).Err()
}

// SaveComplaint зберігає скаргу в PostgreSQL.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	if complaint.ComplaintID == "" {
		complaint.ComplaintID = uuid.New().String()
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now()
	}
	return s.DB.Create(complaint).Error
}

// SumRecentComplaintWeight повертає сумарну вагу скарг на користувача
// з моменту since.
func (s *Service) SumRecentComplaintWeight(targetID string, since time.Time) (int64, error) {
	var sum int64
	err := s.DB.Model(&models.Complaint{}).
		Where("target_id = ? AND created_at > ?", targetID, since).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&sum).Error
	return sum, err
}
