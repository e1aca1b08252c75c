package ingredient

import (
	"context"
	"errors"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]domain.IngredientResponse, error)
		GetIngredientByID(ctx context.Context, userID, ingredientID uint) (domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, userID uint, req domain.IngredientRequest) (domain.IngredientResponse, bool, error)
		UpdateIngredient(ctx context.Context, userID, ingredientID uint, req domain.IngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, userID, ingredientID uint) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, toIngredientResponse(ingredient))
	}
	return res, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, userID, ingredientID uint) (domain.IngredientResponse, error) {
	ingredient, err := s.getOwnedIngredient(ctx, userID, ingredientID)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

// CreateIngredient returns the existing ingredient when the owner already has one with
// that name; the bool reports whether a row was created.
func (s *ingredientService) CreateIngredient(ctx context.Context, userID uint, req domain.IngredientRequest) (domain.IngredientResponse, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, false, domain.ErrEmptyName
	}

	ingredient, created, err := s.ingredientRepository.GetOrCreateIngredient(ctx, userID, name)
	if err != nil {
		return domain.IngredientResponse{}, false, err
	}
	return toIngredientResponse(ingredient), created, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, userID, ingredientID uint, req domain.IngredientRequest) (domain.IngredientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, domain.ErrEmptyName
	}

	ingredient, err := s.getOwnedIngredient(ctx, userID, ingredientID)
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient.Name = name
	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.IngredientResponse{}, domain.ErrIngredientAlreadyExists
		}
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, userID, ingredientID uint) error {
	ingredient, err := s.getOwnedIngredient(ctx, userID, ingredientID)
	if err != nil {
		return err
	}
	return s.ingredientRepository.DeleteIngredient(ctx, ingredient)
}

func (s *ingredientService) getOwnedIngredient(ctx context.Context, userID, ingredientID uint) (*entities.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}
}
