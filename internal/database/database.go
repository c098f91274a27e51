package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrypilot/backend/internal/models"
)

// New opens the sqlite database holding per-client favorites and
// ratings and migrates its schema. Pass ":memory:" for an ephemeral
// database in tests.
func New(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.FavoriteRecipe{}, &models.RecipeRating{}); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	log.Printf("Successfully opened database at %s", path)
	return db, nil
}
