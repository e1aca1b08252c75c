package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorsWrapErrValidation(t *testing.T) {
	for _, err := range []error{
		ErrInvalidPrice,
		ErrInvalidFilter,
		ErrInvalidImage,
		ErrEmptyName,
		ErrTagAlreadyExists,
		ErrIngredientAlreadyExists,
		ErrEmailAlreadyExists,
	} {
		assert.ErrorIs(t, err, ErrValidation, err.Error())
	}

	for _, err := range []error{ErrRecipeNotFound, ErrTagNotFound, ErrTokenInvalid, ErrUnauthenticated} {
		assert.False(t, errors.Is(err, ErrValidation), err.Error())
	}
}
