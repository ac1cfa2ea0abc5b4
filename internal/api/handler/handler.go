package handler

import (
	"net/http"

	"duochat/backend/internal/broker"

	"github.com/gin-gonic/gin"
)

// Handler містить посилання на Broker та реєстр з'єднань
type Handler struct {
	Broker    *broker.BrokerService
	Registry  *broker.Registry
	JWTSecret []byte
}

func NewHandler(b *broker.BrokerService, r *broker.Registry, jwtSecret string) *Handler {
	return &Handler{
		Broker:    b,
		Registry:  r,
		JWTSecret: []byte(jwtSecret),
	}
}

// Health віддає простий healthcheck для балансувальника.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": h.Registry.Len()})
}
