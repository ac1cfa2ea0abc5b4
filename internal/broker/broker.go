package broker

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"duochat/backend/internal/models"
	"duochat/backend/internal/storage"
)

// Moderator обробляє скарги на співрозмовників.
type Moderator interface {
	HandleComplaint(complaint *models.Complaint) error
}

// BrokerService оркеструє клієнтські інтенти. Кожен виклик
// самодостатній і не тримає спільного стану між інвокаціями: вся
// координація між користувачами йде через транзакційний Storage.
type BrokerService struct {
	Storage    storage.Storage
	Delivery   Delivery
	Limiter    *RateLimiterService
	Moderation Moderator

	MaxMessageLength int
}

// NewBrokerService створює новий Broker.
func NewBrokerService(s storage.Storage, d Delivery, limiter *RateLimiterService, mod Moderator, maxMessageLength int) *BrokerService {
	return &BrokerService{
		Storage:          s,
		Delivery:         d,
		Limiter:          limiter,
		Moderation:       mod,
		MaxMessageLength: maxMessageLength,
	}
}

// Dispatch розбирає конверт клієнтського повідомлення і викликає
// відповідний інтент. Помилка повертається лише для неочікуваних збоїв
// (storage, транспорт); очікувані стани вже перетворено на ERROR-нотифікації.
func (b *BrokerService) Dispatch(connectionID string, raw []byte) error {
	var msg models.IncomingMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		b.notify(connectionID, errorMessage("Invalid message format", nil))
		return nil
	}

	switch msg.Action {
	case models.ActionStartSearch:
		return b.StartSearch(connectionID)
	case models.ActionStopSearch:
		return b.StopSearch(connectionID)
	case models.ActionSendMessage:
		var payload models.SendMessagePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				b.notify(connectionID, errorMessage("Invalid message format", nil))
				return nil
			}
		}
		return b.SendMessage(connectionID, payload)
	case models.ActionEndChat:
		return b.EndChat(connectionID)
	case models.ActionReportPartner:
		var payload models.ReportPartnerPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				b.notify(connectionID, errorMessage("Invalid message format", nil))
				return nil
			}
		}
		return b.ReportPartner(connectionID, payload)
	default:
		b.notify(connectionID, errorMessage("Unknown action", nil))
		return nil
	}
}

// HandleConnect реєструє нове з'єднання і повідомляє клієнту його userId.
// Порожній userID означає перший візит, Storage згенерує свіжий.
func (b *BrokerService) HandleConnect(connectionID, userID string) (*models.Connection, error) {
	conn, err := b.Storage.CreateConnection(connectionID, userID)
	if err != nil {
		return nil, err
	}

	b.notify(connectionID, models.OutgoingMessage{
		Type:    models.TypeConnected,
		Payload: map[string]any{"userId": conn.UserID},
	})
	return conn, nil
}

// HandleDisconnect прибирає стан відключеного з'єднання. Якщо користувач
// був у чаті, партнера повідомляємо best-effort: його наступна дія все одно
// самостійно виявить, що чату більше немає.
func (b *BrokerService) HandleDisconnect(connectionID string) error {
	result, err := b.Storage.HandleDisconnect(connectionID)
	if err != nil {
		return err
	}
	if result != nil && result.PartnerConnectionID != "" {
		b.notify(result.PartnerConnectionID, models.OutgoingMessage{Type: models.TypePartnerDisconnected})
	}
	return nil
}

// StartSearch дає або миттєвий матч із кимось із черги, або постановку в
// чергу. Жодного очікування між інвокаціями немає.
func (b *BrokerService) StartSearch(connectionID string) error {
	conn, err := b.Storage.GetUserByConnectionID(connectionID)
	if err != nil {
		return err
	}
	if conn == nil {
		// Сесію втрачено (наприклад, після редеплою); це штатний шлях
		// відновлення для клієнта.
		log.Printf("ERROR: User not found during search (connection %s)", connectionID)
		b.notify(connectionID, errorMessage("Session expired, please reconnect", nil))
		return nil
	}

	banned, err := b.Storage.IsUserBanned(conn.UserID)
	if err != nil {
		return err
	}
	if banned {
		b.notify(connectionID, errorMessage("You are temporarily banned", nil))
		return nil
	}

	match, err := b.Storage.AttemptMatch(conn.UserID, connectionID)
	if err != nil {
		return err
	}

	if match.Matched {
		matched := models.OutgoingMessage{
			Type:    models.TypeMatched,
			Payload: map[string]any{"chatId": match.ChatID},
		}
		b.notify(connectionID, matched)
		b.notify(match.PartnerConnectionID, matched)
		return nil
	}

	b.notify(connectionID, models.OutgoingMessage{Type: models.TypeSearching})
	return nil
}

// StopSearch знімає користувача з черги. No-op для невідомого з'єднання
// та для користувача, який і не шукав.
func (b *BrokerService) StopSearch(connectionID string) error {
	conn, err := b.Storage.GetUserByConnectionID(connectionID)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}

	if err := b.Storage.RemoveFromQueue(conn.UserID); err != nil {
		return err
	}
	if err := b.Storage.SetUserStatus(conn.UserID, models.StatusIdle); err != nil {
		return err
	}

	b.notify(connectionID, models.OutgoingMessage{Type: models.TypeSearchEnded})
	return nil
}

// EndChat завершує активний чат і повідомляє обидві сторони. Якщо чату
// не було, це тихий no-op без нотифікацій.
func (b *BrokerService) EndChat(connectionID string) error {
	conn, err := b.Storage.GetUserByConnectionID(connectionID)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}

	partner, err := b.Storage.EndChat(conn.UserID)
	if err != nil {
		return err
	}
	if partner == nil {
		return nil
	}

	ended := models.OutgoingMessage{Type: models.TypeChatEnded}
	b.notify(connectionID, ended)
	b.notify(partner.ConnectionID, ended)
	return nil
}

// SendMessage валідує, перевіряє ліміт, фіксує надсилання і релеїть
// повідомлення партнерові. Провал доставки означає, що партнер зник:
// чат завершується від імені відправника.
func (b *BrokerService) SendMessage(connectionID string, payload models.SendMessagePayload) error {
	if err := ValidateMessage(payload.Message, b.MaxMessageLength); err != nil {
		b.notify(connectionID, errorMessage(err.Error(), payload.MessageID))
		return nil
	}

	conn, err := b.Storage.GetUserByConnectionID(connectionID)
	if err != nil {
		return err
	}
	if conn == nil {
		// Коректний клієнт сюди не потрапляє: без сесії немає чату,
		// у який можна писати. Тому це логічна помилка, а не ERROR клієнту.
		return fmt.Errorf("send from unknown connection %s", connectionID)
	}

	allowed, err := b.Limiter.Allow(conn.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		b.notify(connectionID, errorMessage("Rate limit exceeded", payload.MessageID))
		return nil
	}

	partner, err := b.Storage.GetChatPartner(conn.UserID)
	if err != nil {
		return err
	}
	if partner == nil {
		b.notify(connectionID, errorMessage("Not in chat", payload.MessageID))
		return nil
	}

	if err := b.Limiter.Record(conn.UserID, len(payload.Message)); err != nil {
		return err
	}

	delivered, err := b.Delivery.Send(partner.ConnectionID, models.OutgoingMessage{
		Type:      models.TypeMessage,
		Payload:   map[string]any{"message": SanitizeMessage(payload.Message)},
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	if !delivered {
		log.Printf("WARNING: Stale partner connection %s, ending chat for %s", partner.ConnectionID, conn.UserID)
		if _, err := b.Storage.EndChat(conn.UserID); err != nil {
			return err
		}
		b.notify(connectionID, models.OutgoingMessage{Type: models.TypePartnerDisconnected})
	}
	return nil
}

// ReportPartner фіксує скаргу на поточного співрозмовника.
func (b *BrokerService) ReportPartner(connectionID string, payload models.ReportPartnerPayload) error {
	conn, err := b.Storage.GetUserByConnectionID(connectionID)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}

	partner, err := b.Storage.GetChatPartner(conn.UserID)
	if err != nil {
		return err
	}
	if partner == nil {
		b.notify(connectionID, errorMessage("Not in chat", nil))
		return nil
	}

	complaint := &models.Complaint{
		ReporterID: conn.UserID,
		TargetID:   partner.UserID,
		ChatID:     partner.ChatID,
		Reason:     payload.Reason,
	}
	if err := b.Moderation.HandleComplaint(complaint); err != nil {
		return err
	}

	b.notify(connectionID, models.OutgoingMessage{Type: models.TypeReportReceived})
	return nil
}

// notify робить одну best-effort спробу доставки з логуванням провалу.
// Провал нотифікації ніколи не зриває операцію, що її породила.
func (b *BrokerService) notify(connectionID string, msg models.OutgoingMessage) {
	delivered, err := b.Delivery.Send(connectionID, msg)
	if err != nil {
		log.Printf("ERROR: Failed to send %s to %s: %v", msg.Type, connectionID, err)
		return
	}
	if !delivered {
		log.Printf("WARNING: Stale connection %s, dropped %s", connectionID, msg.Type)
	}
}

func errorMessage(text string, messageID *int) models.OutgoingMessage {
	return models.OutgoingMessage{
		Type:    models.TypeError,
		Payload: models.ErrorPayload{Message: text, MessageID: messageID},
	}
}
