package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/internal/utils/storage"
	"recipe-catalog/pkg/ingredient"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/recipe"
	"recipe-catalog/pkg/tag"
	"recipe-catalog/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const maxUploadSize = 10 * 1024 * 1024

type AppOptions struct {
	Storage   storage.Storage
	JWTSecret string
	SendMail  mailing.Sender
	AppURL    string

	// LogOutput receives the request log; nil discards it.
	LogOutput io.Writer
	// RateLimit is requests per second per client; zero disables the limiter.
	RateLimit int
}

// LoadAppOptions reads AppOptions from config.yaml / the environment and
// opens the request log file.
func LoadAppOptions(store storage.Storage) (AppOptions, error) {
	logFile := utils.GetConfigOr("LOG_FILE", "./logs/app.log")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return AppOptions{}, err
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return AppOptions{}, err
	}

	rateLimit, err := strconv.Atoi(utils.GetConfigOr("RATE_LIMIT", "10"))
	if err != nil {
		rateLimit = 10
	}

	return AppOptions{
		Storage:   store,
		JWTSecret: utils.GetConfig("JWT_SECRET"),
		SendMail:  mailing.NewSender(mailing.LoadMailConfig()),
		AppURL:    utils.GetConfig("APP_URL"),
		LogOutput: file,
		RateLimit: rateLimit,
	}, nil
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: maxUploadSize,
	})
	validator := utils.Validate

	// setting up logging and limiter
	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = io.Discard
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     logOutput,
	}))

	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService, opts.SendMail, opts.AppURL)
	recipeService := recipe.NewRecipeService(recipeRepository, opts.Storage)
	tagService := tag.NewTagService(tagRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	middlewares := middleware.NewMiddleware(userService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	tagHandler := handlers.NewTagHandler(tagService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		TagHandler:        tagHandler,
		IngredientHandler: ingredientHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	if local, ok := opts.Storage.(*storage.LocalStorage); ok {
		routesConfig.MediaRoot = local.Root()
		routesConfig.MediaURL = local.BaseURL()
	}
	routesConfig.Setup()
	return app, nil
}
