package services

import (
	"testing"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the package's database handle at a fresh in-memory
// sqlite instance. Tests share the global handle, so none of them may run in
// parallel.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	config.DB = db
}

func createTestUser(t *testing.T) models.User {
	t.Helper()

	user := models.User{
		Email:    "test@example.com",
		Password: "irrelevant",
		HeightCm: 180,
		Sex:      SexMale,
		DOB:      time.Date(1996, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
