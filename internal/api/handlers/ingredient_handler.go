package handlers

import (
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredient(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetIngredients, err)
	}

	res, err := h.ingredientService.GetIngredients(c.Context(), userID, isTruthy(c.Query("assigned_only")))
	if err != nil {
		return failed(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetIngredient, err)
	}
	ingredientID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedGetIngredient, domain.ErrIngredientNotFound)
	}

	res, err := h.ingredientService.GetIngredientByID(c.Context(), userID, ingredientID)
	if err != nil {
		return failed(c, domain.MessageFailedGetIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredient)
}

func (h *ingredientHandler) CreateIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedCreateIngredient, err)
	}
	req := new(domain.IngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, created, err := h.ingredientService.CreateIngredient(c.Context(), userID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedCreateIngredient, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return presenters.SuccessResponse(c, res, status, domain.MessageSuccessCreateIngredient)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateIngredient, err)
	}
	ingredientID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedUpdateIngredient, domain.ErrIngredientNotFound)
	}
	req := new(domain.IngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.ingredientService.UpdateIngredient(c.Context(), userID, ingredientID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedDeleteIngredient, err)
	}
	ingredientID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedDeleteIngredient, domain.ErrIngredientNotFound)
	}

	if err := h.ingredientService.DeleteIngredient(c.Context(), userID, ingredientID); err != nil {
		return failed(c, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.NoContent(c)
}
