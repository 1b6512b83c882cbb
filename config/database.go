package config

import (
	"fmt"
	"log"
	"os"

	"github.com/rink-radar/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Rink{},
		&models.Visit{},
		&models.Checkin{},
		&models.Review{},
		&models.Event{},
		&models.EventParticipant{},
		&models.SuspiciousActivity{},
	)

	return db
}
