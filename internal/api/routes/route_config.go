package routes

import (
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService

	// MediaRoot is served under MediaURL when images live on local disk.
	MediaRoot string
	MediaURL  string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Tags()
	c.Ingredients()
	c.GuestRoute()
	c.Media()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Patch("/:id", c.RecipeHandler.PatchRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/upload-image", c.RecipeHandler.UploadImage)
	recipes.Delete("/:id/image", c.RecipeHandler.DeleteImage)
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags", c.Middleware.AuthMiddleware(c.JWTService))

	tags.Get("", c.TagHandler.GetTags)
	tags.Post("", c.TagHandler.CreateTag)
	tags.Get("/:id", c.TagHandler.GetTag)
	tags.Patch("/:id", c.TagHandler.UpdateTag)
	tags.Delete("/:id", c.TagHandler.DeleteTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))

	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Post("", c.IngredientHandler.CreateIngredient)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	ingredients.Patch("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Media() {
	if c.MediaRoot == "" || c.MediaURL == "" {
		return
	}
	c.App.Static(c.MediaURL, c.MediaRoot, fiber.Static{
		ByteRange: true,
	})
}
