package ingredient

import (
	"context"
	"strings"

	"recipe-catalog/entities"
	"recipe-catalog/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	IngredientRepository interface {
		GetIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]*entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, userID, id uint) (*entities.Ingredient, error)
		GetOrCreateIngredient(ctx context.Context, userID uint, name string) (*entities.Ingredient, bool, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient

	query := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Select("ingredients.*").
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	if err := query.Order("ingredients.name desc").Order("ingredients.id desc").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	// An ingredient used by several recipes comes back once per recipe.
	return utils.UniqueBy(ingredients, func(i *entities.Ingredient) uint { return i.ID }), nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, userID, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetOrCreateIngredient reports whether the row was inserted by this call.
func (r *ingredientRepository) GetOrCreateIngredient(ctx context.Context, userID uint, name string) (*entities.Ingredient, bool, error) {
	ingredient := &entities.Ingredient{UserID: userID, Name: name}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ingredient)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return ingredient, true, nil
	}

	var existing entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Take(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Model(ingredient).Update("name", strings.TrimSpace(ingredient.Name)).Error
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}
