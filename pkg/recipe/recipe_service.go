package recipe

import (
	"context"
	"errors"
	"fmt"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils/imaging"
	"recipe-catalog/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const imageFolder = "recipe"

// maxPrice mirrors a numeric(5,2) column.
var maxPrice = decimal.NewFromInt(1000)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, userID uint, filter domain.RecipeFilter) ([]domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, userID, recipeID uint) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, userID uint, req domain.RecipeRequest) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, userID, recipeID uint, req domain.RecipeRequest) (domain.RecipeDetail, error)
		PatchRecipe(ctx context.Context, userID, recipeID uint, req domain.PatchRecipeRequest) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, userID, recipeID uint) error
		UploadImage(ctx context.Context, userID, recipeID uint, data []byte) (domain.RecipeImageResponse, error)
		DeleteImage(ctx context.Context, userID, recipeID uint) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.Storage
	}
)

func NewRecipeService(recipeRepository RecipeRepository, storage storage.Storage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          storage,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, userID uint, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipes(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, toRecipe(recipe))
	}
	return res, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, userID, recipeID uint) (domain.RecipeDetail, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.toRecipeDetail(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, userID uint, req domain.RecipeRequest) (domain.RecipeDetail, error) {
	if err := validatePrice(*req.Price); err != nil {
		return domain.RecipeDetail{}, err
	}
	patch, err := newAssociationPatch(req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	// req.User is ignored; the caller owns what they create.
	recipe := &entities.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       *req.Price,
		Description: req.Description,
		Link:        req.Link,
	}

	err = s.recipeRepository.Transaction(ctx, func(tx RecipeRepository) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		return patch.apply(ctx, tx, recipe)
	})
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, userID, recipe.ID)
}

// UpdateRecipe replaces every scalar field. Omitted description and link go
// back to their empty defaults; tags and ingredients keep the absent/present rule.
func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID uint, req domain.RecipeRequest) (domain.RecipeDetail, error) {
	if err := validatePrice(*req.Price); err != nil {
		return domain.RecipeDetail{}, err
	}
	patch, err := newAssociationPatch(req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	err = s.recipeRepository.Transaction(ctx, func(tx RecipeRepository) error {
		recipe, err := tx.GetRecipeByID(ctx, userID, recipeID)
		if err != nil {
			return err
		}

		recipe.Title = req.Title
		recipe.TimeMinutes = req.TimeMinutes
		recipe.Price = *req.Price
		recipe.Description = req.Description
		recipe.Link = req.Link

		if err := tx.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}
		return patch.apply(ctx, tx, recipe)
	})
	if err != nil {
		return domain.RecipeDetail{}, notFound(err, domain.ErrRecipeNotFound)
	}

	return s.GetRecipeDetail(ctx, userID, recipeID)
}

func (s *recipeService) PatchRecipe(ctx context.Context, userID, recipeID uint, req domain.PatchRecipeRequest) (domain.RecipeDetail, error) {
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return domain.RecipeDetail{}, err
		}
	}
	patch, err := newAssociationPatch(req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	err = s.recipeRepository.Transaction(ctx, func(tx RecipeRepository) error {
		recipe, err := tx.GetRecipeByID(ctx, userID, recipeID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			recipe.Title = *req.Title
		}
		if req.TimeMinutes != nil {
			recipe.TimeMinutes = *req.TimeMinutes
		}
		if req.Price != nil {
			recipe.Price = *req.Price
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.Link != nil {
			recipe.Link = *req.Link
		}

		if err := tx.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}
		return patch.apply(ctx, tx, recipe)
	})
	if err != nil {
		return domain.RecipeDetail{}, notFound(err, domain.ErrRecipeNotFound)
	}

	return s.GetRecipeDetail(ctx, userID, recipeID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	var imageKey string
	err := s.recipeRepository.Transaction(ctx, func(tx RecipeRepository) error {
		recipe, err := tx.GetRecipeByID(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		imageKey = recipe.ImageKey
		return tx.DeleteRecipe(ctx, recipe)
	})
	if err != nil {
		return notFound(err, domain.ErrRecipeNotFound)
	}

	s.releaseImage(ctx, imageKey)
	return nil
}

// UploadImage validates and stores data outside of any transaction, then
// points the recipe at the new object and releases the previous one.
func (s *recipeService) UploadImage(ctx context.Context, userID, recipeID uint, data []byte) (domain.RecipeImageResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeImageResponse{}, err
	}

	img, err := imaging.Inspect(data)
	if err != nil {
		return domain.RecipeImageResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	objectKey := storage.NewObjectKey(imageFolder, img.Extension)
	if err := s.storage.UploadFile(ctx, objectKey, data, img.ContentType); err != nil {
		return domain.RecipeImageResponse{}, err
	}

	if err := s.recipeRepository.UpdateImage(ctx, userID, recipeID, objectKey, img.BlurHash); err != nil {
		s.releaseImage(ctx, objectKey)
		return domain.RecipeImageResponse{}, notFound(err, domain.ErrRecipeNotFound)
	}

	if recipe.ImageKey != "" && recipe.ImageKey != objectKey {
		s.releaseImage(ctx, recipe.ImageKey)
	}

	image := s.storage.GetPublicLinkKey(objectKey)
	return domain.RecipeImageResponse{
		ID:            recipe.ID,
		Image:         &image,
		ImageBlurHash: img.BlurHash,
	}, nil
}

func (s *recipeService) DeleteImage(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.getOwnedRecipe(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if recipe.ImageKey == "" {
		return domain.ErrRecipeHasNoImage
	}

	if err := s.recipeRepository.UpdateImage(ctx, userID, recipeID, "", ""); err != nil {
		return notFound(err, domain.ErrRecipeNotFound)
	}
	s.releaseImage(ctx, recipe.ImageKey)
	return nil
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, userID, recipeID uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, userID, recipeID)
	if err != nil {
		return nil, notFound(err, domain.ErrRecipeNotFound)
	}
	return recipe, nil
}

// releaseImage removes a stored object. Failures leave an orphan object
// behind, which is logged rather than failing the request.
func (s *recipeService) releaseImage(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := s.storage.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", objectKey, err)
	}
}

func (s *recipeService) toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		Recipe:        toRecipe(recipe),
		Description:   recipe.Description,
		ImageBlurHash: recipe.ImageBlurHash,
		User:          recipe.UserID,
	}
	if recipe.ImageKey != "" {
		image := s.storage.GetPublicLinkKey(recipe.ImageKey)
		detail.Image = &image
	}
	return detail
}

func toRecipe(recipe *entities.Recipe) domain.Recipe {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}

	return domain.Recipe{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThanOrEqual(maxPrice) || !price.Equal(price.Round(2)) {
		return domain.ErrInvalidPrice
	}
	return nil
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
