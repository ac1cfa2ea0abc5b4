package config

import (
	"os"
	"strconv"
	"time"
)

// Config описує конфігурацію сервісу, зчитану з оточення.
// Завантаження .env робить cmd/main.go через godotenv.
type Config struct {
	Addr          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string

	// Rate limit: скільки повідомлень дозволено за ковзне вікно.
	RateLimitMessages int
	RateLimitWindow   time.Duration

	MaxMessageLength int
}

// Load читає конфігурацію з env-змінних, підставляючи дефолти
// для локальної розробки (docker-compose).
func Load() *Config {
	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=duochatdb port=5432 sslmode=disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),

		RateLimitMessages: getEnvInt("RATE_LIMIT_MESSAGES", 10),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		MaxMessageLength: getEnvInt("MAX_MESSAGE_LENGTH", 1000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
