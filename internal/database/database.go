package database

import (
	"github.com/campus-connect/campus-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs schema auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.Listing{},
		&models.ListingImage{},
		&models.Conversation{},
		&models.Message{},
		&models.Transaction{},
		&models.Notification{},
		&models.FlaggedContent{},
		&models.Event{},
		&models.RSVP{},
		&models.Announcement{},
		&models.LostFoundItem{},
	)
}
