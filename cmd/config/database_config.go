package config

import (
	"fmt"

	"recipe-catalog/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens Postgres, or a SQLite file when DB_DRIVER=sqlite (local
// development only).
func ConnectDB() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if utils.GetConfig("DB_DRIVER") == "sqlite" {
		path := utils.GetConfigOr("DB_NAME", "recipes.db")
		db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), cfg)
		if err != nil {
			log.Errorf("Database connection failed: %v", err)
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfigOr("DB_PORT", "5432"),
		utils.GetConfigOr("DB_SSLMODE", "disable"),
		utils.GetConfigOr("DB_TIMEZONE", "UTC"),
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		log.Errorf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
