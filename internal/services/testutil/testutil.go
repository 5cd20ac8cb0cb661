// Package testutil provides shared test utilities for integration tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rgbstage/rgbstage-go/internal/database/models"
	"github.com/rgbstage/rgbstage-go/internal/database/repositories"
)

// TestDB holds the test database and repositories.
type TestDB struct {
	DB         *gorm.DB
	PresetRepo *repositories.PresetRepository
	ShowRepo   *repositories.ShowRepository
}

// SetupTestDB creates an in-memory SQLite database for testing.
// It returns a TestDB with all repositories initialized and a cleanup function.
func SetupTestDB(t *testing.T) (*TestDB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.GradientPreset{},
		&models.GradientStop{},
		&models.ShowRecord{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	testDB := &TestDB{
		DB:         db,
		PresetRepo: repositories.NewPresetRepository(db),
		ShowRepo:   repositories.NewShowRepository(db),
	}

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}

	return testDB, cleanup
}
