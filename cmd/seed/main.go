// Команда seed готує базу до свіжого деплою: проганяє міграції та
// вичищає транзієнтний стан (з'єднання, чергу, активні чати), який
// не переживає рестарт транспортного шару.
package main

import (
	"log"

	"duochat/backend/internal/config"
	"duochat/backend/internal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	log.Println("Running schema migrations...")
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

	// Після редеплою жодне старе з'єднання не живе: рядки стали б
	// сиротами і блокували б повторний матчинг.
	for _, m := range []interface{}{
		&models.ChatSession{},
		&models.QueueEntry{},
		&models.Connection{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			log.Fatalf("Failed to clear transient state: %v", err)
		}
	}

	log.Println("Seeding complete: schema migrated, transient state cleared.")
}
