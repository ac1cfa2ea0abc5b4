package broker

import (
	"encoding/json"
	"log"
	"time"

	"duochat/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Ліміт сирого кадру: 1000 символів тексту плюс конверт із запасом
	// на багатобайтні рядки.
	maxFrameSize = 8192
)

// WSClient реалізує інтерфейс broker.Client поверх gorilla/websocket.
type WSClient struct {
	ConnectionID string
	Conn         *websocket.Conn
	Broker       *BrokerService
	Registry     *Registry
	Send         chan models.OutgoingMessage
}

// --- Реалізація методів інтерфейсу ---

func (c *WSClient) GetConnectionID() string                       { return c.ConnectionID }
func (c *WSClient) GetSendChannel() chan<- models.OutgoingMessage { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WSClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close закриває Send канал (що зупинить writePump)
func (c *WSClient) Close() {
	close(c.Send)
	// readPump зупиниться сам, коли Conn.Close() буде викликано в його defer
}

func (c *WSClient) readPump() {
	// Відключення: спершу прибираємо себе з реєстру, щоб подальші доставки
	// бачили stale, потім віддаємо broker'у зачистку durable-стану.
	defer func() {
		c.Registry.Remove(c.ConnectionID)
		if err := c.Broker.HandleDisconnect(c.ConnectionID); err != nil {
			log.Printf("ERROR: Disconnect cleanup for %s: %v", c.ConnectionID, err)
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		// Очікувані стани вже пішли клієнту ERROR-нотифікаціями;
		// сюди долітають лише неочікувані збої.
		if err := c.Broker.Dispatch(c.ConnectionID, raw); err != nil {
			log.Printf("ERROR: Intent from %s failed: %v", c.ConnectionID, err)
		}
	}
}

// writePump читає повідомлення з каналу Send і записує їх у WebSocket.
func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрито, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for connection %s: %v", c.ConnectionID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, dataToWrite); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
