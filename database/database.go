package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/models"
)

var DB *gorm.DB

// Connect opens the Postgres connection described by the environment
// and stores it in the package-level DB handle.
func Connect() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "youth_handbook"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = db
}

// Migrate creates/updates all tables. Shared by main and the test
// setup so both migrate the same model list.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Unit{},
		&models.User{},
		&models.Activity{},
		&models.ActivityParticipant{},
		&models.PointsHistory{},
		&models.Document{},
		&models.Post{},
		&models.Survey{},
		&models.Suggestion{},
		&models.Exam{},
		&models.ExamResult{},
	)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
