package models_test

import (
	"testing"

	"duochat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestConnectionBeforeCreate_GeneratesUUID verifies that a connection created
// without a client-supplied identity gets a fresh valid UUID.
func TestConnectionBeforeCreate_GeneratesUUID(t *testing.T) {
	conn := &models.Connection{ConnectionID: "conn_1"}

	assert.Empty(t, conn.UserID, "UserID should be empty before BeforeCreate")

	err := conn.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	assert.NoError(t, err)
	assert.NotEmpty(t, conn.UserID)
	assert.Equal(t, models.StatusIdle, conn.Status, "a fresh connection starts IDLE")

	parsed, parseErr := uuid.Parse(conn.UserID)
	assert.NoError(t, parseErr, "UserID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestConnectionBeforeCreate_PreservesClientIdentity verifies the hook keeps
// the stable userId a reconnecting client brings with it.
func TestConnectionBeforeCreate_PreservesClientIdentity(t *testing.T) {
	existingID := uuid.New().String()
	conn := &models.Connection{ConnectionID: "conn_2", UserID: existingID, Status: models.StatusIdle}

	err := conn.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, conn.UserID, "BeforeCreate should preserve existing UserID")
}

// TestConnectionBeforeCreate_UniqueAcrossConnections verifies distinct sockets
// get distinct generated identities.
func TestConnectionBeforeCreate_UniqueAcrossConnections(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		conn := &models.Connection{ConnectionID: uuid.New().String()}
		assert.NoError(t, conn.BeforeCreate(nil))
		assert.NotContains(t, seen, conn.UserID, "each connection should get a unique UserID")
		seen[conn.UserID] = true
	}
}
