package broker_test

import (
	"testing"
	"time"

	"duochat/backend/internal/broker"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUnderThreshold(t *testing.T) {
	storageMock := new(MockStorage)
	limiter := broker.NewRateLimiterService(storageMock, 10, time.Minute)

	storageMock.On("CountRecentSends", "user_1", time.Minute).Return(int64(9), nil)

	allowed, err := limiter.Allow("user_1")

	assert.NoError(t, err)
	assert.True(t, allowed, "9 of 10 used, one more is allowed")
}

func TestRateLimiter_DeniesAtThreshold(t *testing.T) {
	storageMock := new(MockStorage)
	limiter := broker.NewRateLimiterService(storageMock, 10, time.Minute)

	storageMock.On("CountRecentSends", "user_1", time.Minute).Return(int64(10), nil)

	allowed, err := limiter.Allow("user_1")

	assert.NoError(t, err)
	assert.False(t, allowed, "at the threshold the send is denied")
}

func TestRateLimiter_RecordDelegatesToStorage(t *testing.T) {
	storageMock := new(MockStorage)
	limiter := broker.NewRateLimiterService(storageMock, 10, time.Minute)

	storageMock.On("LogSend", "user_1", 42).Return(nil)

	assert.NoError(t, limiter.Record("user_1", 42))
	storageMock.AssertExpectations(t)
}
