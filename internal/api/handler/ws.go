package handler

import (
	"log"
	"net/http"

	"duochat/backend/internal/broker"
	"duochat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket
func (h *Handler) ServeWebSocket(c *gin.Context) {
	// 1. Отримати AnonID з JWT
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	tokenString := authHeader[7:]

	anonID, err := h.validateAndGetAnonID(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	// 2. Кожен фізичний сокет стає окремим Connection із власним ID.
	// Той самий anonID після реконекта дає новий рядок, не відновлення.
	connectionID := uuid.New().String()
	client := &broker.WSClient{
		ConnectionID: connectionID,
		Conn:         conn,
		Broker:       h.Broker,
		Registry:     h.Registry,
		Send:         make(chan models.OutgoingMessage, 256),
	}

	// 3. Реєстрація в локальному реєстрі до HandleConnect, щоб
	// CONNECTED-нотифікація мала куди доставитись.
	h.Registry.Add(client)
	client.Run()

	if _, err := h.Broker.HandleConnect(connectionID, anonID); err != nil {
		log.Printf("ERROR: Failed to register connection %s: %v", connectionID, err)
		client.Close()
	}
}
