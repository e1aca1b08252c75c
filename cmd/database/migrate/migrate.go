package migration

import (
	"fmt"

	"recipe-catalog/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Tag{}, &entities.Ingredient{}); err != nil {
		return fmt.Errorf("migrating tag and ingredient tables: %w", err)
	}
	// Recipe last: its many2many join tables reference tags and ingredients.
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("migrating recipe tables: %w", err)
	}

	log.Debug("Database migration complete")
	return nil
}
