package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedDeleteImage     = "failed to remove recipe image"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrInvalidPrice     = fmt.Errorf("%w: price must be a non-negative amount below 1000 with at most 2 decimal places", ErrValidation)
	ErrInvalidFilter    = fmt.Errorf("%w: filter must be a comma separated list of ids", ErrValidation)
	ErrInvalidImage     = fmt.Errorf("%w: upload a valid image", ErrValidation)
	ErrEmptyName        = fmt.Errorf("%w: name may not be blank", ErrValidation)
	ErrRecipeHasNoImage = errors.New("recipe has no image")
)

type (
	// NamedItemRequest is the nested payload shape for tags and ingredients.
	NamedItemRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	// RecipeRequest is used by create and full update. User is accepted but
	// never applied; the owner is always the authenticated caller.
	RecipeRequest struct {
		Title       string              `json:"title" validate:"required,max=255"`
		TimeMinutes int                 `json:"time_minutes" validate:"required,gt=0"`
		Price       *decimal.Decimal    `json:"price" validate:"required"`
		Description string              `json:"description"`
		Link        string              `json:"link" validate:"omitempty,max=255"`
		User        *uint               `json:"user,omitempty"`
		Tags        *[]NamedItemRequest `json:"tags" validate:"omitnil,dive"`
		Ingredients *[]NamedItemRequest `json:"ingredients" validate:"omitnil,dive"`
	}

	// PatchRecipeRequest carries a partial update; nil means "not supplied".
	PatchRecipeRequest struct {
		Title       *string             `json:"title" validate:"omitnil,min=1,max=255"`
		TimeMinutes *int                `json:"time_minutes" validate:"omitnil,gt=0"`
		Price       *decimal.Decimal    `json:"price"`
		Description *string             `json:"description"`
		Link        *string             `json:"link" validate:"omitnil,max=255"`
		User        *uint               `json:"user,omitempty"`
		Tags        *[]NamedItemRequest `json:"tags" validate:"omitnil,dive"`
		Ingredients *[]NamedItemRequest `json:"ingredients" validate:"omitnil,dive"`
	}

	RecipeFilter struct {
		TagIDs        []uint
		IngredientIDs []uint
	}

	Recipe struct {
		ID          uint                 `json:"id"`
		Title       string               `json:"title"`
		TimeMinutes int                  `json:"time_minutes"`
		Price       string               `json:"price"`
		Link        string               `json:"link"`
		Tags        []TagResponse        `json:"tags"`
		Ingredients []IngredientResponse `json:"ingredients"`
	}

	RecipeDetail struct {
		Recipe
		Description   string  `json:"description"`
		Image         *string `json:"image"`
		ImageBlurHash string  `json:"image_blurhash,omitempty"`
		User          uint    `json:"user"`
	}

	RecipeImageResponse struct {
		ID            uint    `json:"id"`
		Image         *string `json:"image"`
		ImageBlurHash string  `json:"image_blurhash,omitempty"`
	}
)
