package storage

import (
	"errors"

	"duochat/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetChatPartner повертає другу сторону активного чату користувача
// або (nil, nil), якщо користувач не в чаті.
func (s *Service) GetChatPartner(userID string) (*models.ChatPartner, error) {
	return getChatPartner(s.DB, userID)
}

func getChatPartner(tx *gorm.DB, userID string) (*models.ChatPartner, error) {
	var session models.ChatSession
	err := tx.Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if session.User1ID == userID {
		return &models.ChatPartner{UserID: session.User2ID, ConnectionID: session.User2ConnectionID, ChatID: session.ChatID}, nil
	}
	return &models.ChatPartner{UserID: session.User1ID, ConnectionID: session.User1ConnectionID, ChatID: session.ChatID}, nil
}

// EndChat атомарно завершує чат користувача: видаляє ChatSession і скидає
// обом учасникам статус у IDLE. Повертає партнера, щоб викликач міг його
// повідомити, або (nil, nil), якщо активного чату не було.
func (s *Service) EndChat(userID string) (*models.ChatPartner, error) {
	var partner *models.ChatPartner

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := endChat(tx, userID)
		if err != nil {
			return err
		}
		partner = p
		return nil
	})

	if err != nil {
		return nil, err
	}
	return partner, nil
}

// endChat виконує завершення чату всередині транзакції
// викликача (EndChat або HandleDisconnect).
func endChat(tx *gorm.DB, userID string) (*models.ChatPartner, error) {
	var session models.ChatSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	partner := &models.ChatPartner{UserID: session.User2ID, ConnectionID: session.User2ConnectionID, ChatID: session.ChatID}
	if session.User2ID == userID {
		partner = &models.ChatPartner{UserID: session.User1ID, ConnectionID: session.User1ConnectionID, ChatID: session.ChatID}
	}

	if err := tx.Delete(&models.ChatSession{}, "chat_id = ?", session.ChatID).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&models.Connection{}).
		Where("user_id IN ?", []string{userID, partner.UserID}).
		Updates(map[string]interface{}{
			"status":       models.StatusIdle,
			"matched_with": "",
		}).Error; err != nil {
		return nil, err
	}

	return partner, nil
}

// HandleDisconnect атомарно прибирає стан відключеного з'єднання.
// Гілка залежить від останнього відомого статусу: для CHATTING завершуємо
// чат (партнера повертаємо для нотифікації), для SEARCHING знімаємо з черги,
// для IDLE нічого додаткового. Наприкінці видаляємо сам рядок Connection.
// Все в одній транзакції, щоб конкурентний AttemptMatch не спарував
// користувача, чий disconnect уже в процесі.
func (s *Service) HandleDisconnect(connectionID string) (*models.DisconnectResult, error) {
	var result *models.DisconnectResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var conn models.Connection
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("connection_id = ?", connectionID).
			First(&conn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		result = &models.DisconnectResult{UserID: conn.UserID, Status: conn.Status}

		switch conn.Status {
		case models.StatusChatting:
			partner, err := endChat(tx, conn.UserID)
			if err != nil {
				return err
			}
			if partner != nil {
				result.PartnerConnectionID = partner.ConnectionID
			}
		case models.StatusSearching:
			if err := tx.Delete(&models.QueueEntry{}, "user_id = ?", conn.UserID).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Connection{}, "connection_id = ?", connectionID).Error
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}
