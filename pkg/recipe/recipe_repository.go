package recipe

import (
	"context"
	"errors"
	"fmt"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxResolveAttempts bounds the lookup/insert loop of get-or-create. Each
// suppressed insert means a concurrent writer committed the row first.
const maxResolveAttempts = 3

var errResolveConflict = errors.New("get-or-create kept conflicting")

type (
	RecipeRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction; any error rolls back everything fn did.
		Transaction(ctx context.Context, fn func(tx RecipeRepository) error) error

		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, userID, id uint) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID uint, filter domain.RecipeFilter) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateImage(ctx context.Context, userID, id uint, imageKey, blurHash string) error

		ResolveTags(ctx context.Context, userID uint, names []string) ([]entities.Tag, error)
		ResolveIngredients(ctx context.Context, userID uint, names []string) ([]entities.Ingredient, error)
		ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error
		ReplaceIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Transaction(ctx context.Context, fn func(tx RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, userID, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID uint, filter domain.RecipeFilter) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.withAssociations(r.db.WithContext(ctx)).
		Model(&entities.Recipe{}).
		Select("recipes.*").
		Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	if err := query.Order("recipes.id desc").Find(&recipes).Error; err != nil {
		return nil, err
	}

	// Each matching tag/ingredient pair yields its own joined row.
	return utils.UniqueBy(recipes, func(r *entities.Recipe) uint { return r.ID }), nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).
		Model(recipe).
		Select("Title", "TimeMinutes", "Price", "Description", "Link").
		Updates(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(recipe).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if err := db.Model(recipe).Association("Ingredients").Clear(); err != nil {
		return fmt.Errorf("clear ingredients: %w", err)
	}
	return db.Delete(recipe).Error
}

func (r *recipeRepository) UpdateImage(ctx context.Context, userID, id uint, imageKey, blurHash string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select("ImageKey", "ImageBlurHash").
		Updates(entities.Recipe{ImageKey: imageKey, ImageBlurHash: blurHash})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) ResolveTags(ctx context.Context, userID uint, names []string) ([]entities.Tag, error) {
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		tag, err := getOrCreate(r.db.WithContext(ctx), userID, name, func() *entities.Tag {
			return &entities.Tag{UserID: userID, Name: name}
		})
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (r *recipeRepository) ResolveIngredients(ctx context.Context, userID uint, names []string) ([]entities.Ingredient, error) {
	ingredients := make([]entities.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient, err := getOrCreate(r.db.WithContext(ctx), userID, name, func() *entities.Ingredient {
			return &entities.Ingredient{UserID: userID, Name: name}
		})
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error {
	association := r.db.WithContext(ctx).Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return association.Clear()
	}
	return association.Replace(tags)
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error {
	association := r.db.WithContext(ctx).Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return association.Clear()
	}
	return association.Replace(ingredients)
}

func (r *recipeRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

// getOrCreate looks up the owner's row by exact name and inserts it when
// missing. The insert ignores (user_id, name) conflicts; a suppressed insert
// means another writer won the race, so the lookup runs again.
func getOrCreate[T any](db *gorm.DB, userID uint, name string, build func() *T) (*T, error) {
	for attempt := 0; attempt < maxResolveAttempts; attempt++ {
		var existing T
		err := db.Where("user_id = ? AND name = ?", userID, name).Take(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		created := build()
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(created)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return created, nil
		}
	}
	return nil, errResolveConflict
}
