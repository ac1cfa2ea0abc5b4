package storage

import (
	"errors"
	"time"

	"duochat/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptMatch атомарно шукає партнера для userID.
//
// Усередині однієї транзакції:
//  1. Видаляємо власний залишок у черзі (повторний пошук). Якщо конкурент
//     саме захоплює цей рядок, DELETE дочекається його коміту.
//  2. Якщо за час очікування нас уже спарували, повертаємо чинний чат
//     замість створення другого паралельного.
//  3. Захоплюємо найстаріший чужий запис черги через FOR UPDATE SKIP LOCKED:
//     конкурентні спроби не блокують одна одну і ніколи не захоплюють
//     один і той самий рядок двічі.
//  4. Якщо захопили, створюємо ChatSession, переводимо обох у CHATTING,
//     видаляємо запис партнера.
//  5. Якщо черга порожня (або всі записи вже захоплені конкурентами),
//     upsert власного запису з оновленням joined_at та статус SEARCHING.
func (s *Service) AttemptMatch(userID, connectionID string) (*models.MatchResult, error) {
	result := &models.MatchResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.QueueEntry{}, "user_id = ?", userID).Error; err != nil {
			return err
		}

		var self models.Connection
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&self).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if self.Status == models.StatusChatting {
			partner, err := getChatPartner(tx, userID)
			if err != nil {
				return err
			}
			if partner != nil {
				result.Matched = true
				result.PartnerUserID = partner.UserID
				result.PartnerConnectionID = partner.ConnectionID
				result.ChatID = partner.ChatID
				return nil
			}
		}

		var entry models.QueueEntry
		err = tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("user_id <> ?", userID).
			Order("joined_at ASC").
			First(&entry).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.enqueue(tx, userID, connectionID)
		}
		if err != nil {
			return err
		}

		now := time.Now()
		chatID := uuid.New().String()
		session := models.ChatSession{
			ChatID:            chatID,
			User1ID:           userID,
			User2ID:           entry.UserID,
			User1ConnectionID: connectionID,
			User2ConnectionID: entry.ConnectionID,
			StartedAt:         now,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Connection{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"status":        models.StatusChatting,
				"matched_with":  entry.ConnectionID,
				"last_activity": now,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Connection{}).
			Where("user_id = ?", entry.UserID).
			Updates(map[string]interface{}{
				"status":        models.StatusChatting,
				"matched_with":  connectionID,
				"last_activity": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.QueueEntry{}, "user_id = ?", entry.UserID).Error; err != nil {
			return err
		}

		result.Matched = true
		result.PartnerUserID = entry.UserID
		result.PartnerConnectionID = entry.ConnectionID
		result.ChatID = chatID
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// enqueue ставить користувача в чергу. Повторний виклик не дублює запис,
// а оновлює connection_id та joined_at (позиція скидається на "зараз").
func (s *Service) enqueue(tx *gorm.DB, userID, connectionID string) error {
	now := time.Now()
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"connection_id": connectionID,
			"joined_at":     now,
		}),
	}).Create(&models.QueueEntry{
		UserID:       userID,
		ConnectionID: connectionID,
		JoinedAt:     now,
	}).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":        models.StatusSearching,
			"last_activity": now,
		}).Error
}

// RemoveFromQueue знімає користувача з черги пошуку.
// Відсутність запису не є помилкою.
func (s *Service) RemoveFromQueue(userID string) error {
	return s.DB.Delete(&models.QueueEntry{}, "user_id = ?", userID).Error
}
