package repository

import (
	"fmt"
	"os"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	// Build connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, which the activity ledger relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.StudyGroup{},
		&models.GroupMember{},
		&models.GroupGoal{},
		&models.GroupMemberActivity{},
		&models.Question{},
		&models.Answer{},
		&models.Message{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
