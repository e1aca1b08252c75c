package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessGetIngredient    = "success get ingredient"
	MessageSuccessCreateIngredient = "ingredient created successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"

	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedGetIngredient    = "failed to get ingredient"
	MessageFailedCreateIngredient = "failed to create ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"

	ErrIngredientNotFound      = errors.New("ingredient not found")
	ErrIngredientAlreadyExists = fmt.Errorf("%w: ingredient with this name already exists", ErrValidation)
)

type (
	IngredientRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	IngredientResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
)
