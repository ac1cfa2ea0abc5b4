package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"duochat/backend/internal/api/handler"
	"duochat/backend/internal/broker"
	"duochat/backend/internal/complaint"
	"duochat/backend/internal/config"
	"duochat/backend/internal/models"
	"duochat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.Connection{},
		&models.QueueEntry{},
		&models.ChatSession{},
		&models.SendRecord{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting DuoChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Ініціалізація Broker та колаборантів
	registry := broker.NewRegistry()
	limiter := broker.NewRateLimiterService(s, cfg.RateLimitMessages, cfg.RateLimitWindow)
	moderation := complaint.NewService(s)
	b := broker.NewBrokerService(s, registry, limiter, moderation, cfg.MaxMessageLength)

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(b, registry, cfg.JWTSecret)

	// Роути
	r.GET("/anonid", h.GetAnonID)  // Отримання JWT для AnonID
	r.GET("/ws", h.ServeWebSocket) // WebSocket Upgrade
	r.GET("/healthz", h.Health)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
