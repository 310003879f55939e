package repositories

import (
	"fmt"

	"github.com/anonto42/blogs/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
