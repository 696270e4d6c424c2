// Package testutil provides shared helpers for service tests. Tests run
// against an in-memory SQLite database with the full schema migrated, so
// every test gets an isolated store without needing a running Postgres.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/campus-connect/campus-backend/internal/database"
	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory database and migrates the full schema.
// The connection pool is pinned to one connection so the memory database is
// not dropped between statements.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateTestUser inserts a user with a bcrypt-hashed default password.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   "password123",
		Role:       role,
		IsApproved: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return &user
}

// CreateTestListing inserts an active listing owned by the given seller.
func CreateTestListing(t *testing.T, db *gorm.DB, seller *models.User, title string, price float64) *models.Listing {
	t.Helper()

	listing := models.Listing{
		SellerID:     seller.ID,
		Title:        title,
		Description:  fmt.Sprintf("Description for %s", title),
		Category:     "textbooks",
		Price:        price,
		Status:       models.ListingActive,
		ExpiresAt:    time.Now().AddDate(0, 0, 30),
		SellerName:   seller.Name,
		SellerEmail:  seller.Email,
		SellerRating: seller.Rating,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("failed to create test listing %s: %v", title, err)
	}
	return &listing
}

// CreateTestEvent inserts an active upcoming event organized by the given user.
func CreateTestEvent(t *testing.T, db *gorm.DB, organizer *models.User, title string, capacity int) *models.Event {
	t.Helper()

	event := models.Event{
		OrganizerID:   organizer.ID,
		Title:         title,
		Location:      "Student Center",
		StartsAt:      time.Now().Add(48 * time.Hour),
		Capacity:      capacity,
		Status:        models.EventActive,
		OrganizerName: organizer.Name,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create test event %s: %v", title, err)
	}
	return &event
}
