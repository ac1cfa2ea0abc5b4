package broker

import (
	"time"

	"duochat/backend/internal/storage"
)

// RateLimiterService enforces the per-user send limit against a sliding
// window of SendRecords. The check-then-record pair is deliberately not
// atomic against a user's own concurrent sends: a user racing themselves may
// slip one message past the limit. This is a soft limit, not a security
// boundary.
type RateLimiterService struct {
	Storage storage.Storage
	Limit   int
	Window  time.Duration
}

// NewRateLimiterService створює новий Rate Limiter.
func NewRateLimiterService(s storage.Storage, limit int, window time.Duration) *RateLimiterService {
	return &RateLimiterService{
		Storage: s,
		Limit:   limit,
		Window:  window,
	}
}

// Allow повертає false, коли користувач вичерпав ліміт у поточному вікні.
func (r *RateLimiterService) Allow(userID string) (bool, error) {
	count, err := r.Storage.CountRecentSends(userID, r.Window)
	if err != nil {
		return false, err
	}
	return count < int64(r.Limit), nil
}

// Record фіксує одне надсилання для наступних перевірок.
func (r *RateLimiterService) Record(userID string, length int) error {
	return r.Storage.LogSend(userID, length)
}
