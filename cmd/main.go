package main

import (
	"fmt"

	"recipe-catalog/cmd/config"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Fatalf("failed to set up storage: %v", err)
	}

	opts, err := config.LoadAppOptions(store)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}
	if opts.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	app, err := config.NewApp(db, opts)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	port := utils.GetConfigOr("APP_PORT", "8000")
	log.Infof("listening on :%s", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
