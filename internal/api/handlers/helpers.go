package handlers

import (
	"errors"
	"strconv"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// getUserID reads the id stored by the auth middleware.
func getUserID(c *fiber.Ctx) (uint, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrTokenInvalid
	}
	return uint(id), nil
}

// paramID parses the :id path segment. Anything that is not a positive
// integer can never name a row, so callers answer it with 404.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDList parses "1,2,3". Empty input means no filter.
func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidFilter
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// isTruthy accepts any nonzero integer and the usual boolean spellings.
func isTruthy(raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0
	}
	switch raw {
	case "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func errorStatus(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeHasNoImage):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrCredentialsNotMatched),
		errors.Is(err, domain.ErrUserInactive):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// failed answers err with the status it maps to. Internal errors are logged
// and not echoed to the client.
func failed(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
		return presenters.ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return presenters.ErrorResponse(c, status, message, err)
}
