package handlers

import (
	"io"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		PatchRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
		DeleteImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetRecipes, err)
	}

	var filter domain.RecipeFilter
	if filter.TagIDs, err = parseIDList(c.Query("tags")); err != nil {
		return failed(c, domain.MessageFailedGetRecipes, err)
	}
	if filter.IngredientIDs, err = parseIDList(c.Query("ingredients")); err != nil {
		return failed(c, domain.MessageFailedGetRecipes, err)
	}

	res, err := h.recipeService.GetRecipes(c.Context(), userID, filter)
	if err != nil {
		return failed(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetRecipeDetail, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipeDetail(c.Context(), userID, recipeID)
	if err != nil {
		return failed(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedCreateRecipe, err)
	}
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), userID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateRecipe, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedUpdateRecipe, domain.ErrRecipeNotFound)
	}
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), userID, recipeID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) PatchRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateRecipe, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedUpdateRecipe, domain.ErrRecipeNotFound)
	}
	req := new(domain.PatchRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.PatchRecipe(c.Context(), userID, recipeID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedDeleteRecipe, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedDeleteRecipe, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), userID, recipeID); err != nil {
		return failed(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.NoContent(c)
}

func (h *recipeHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedUploadImage, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedUploadImage, domain.ErrRecipeNotFound)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidImage)
	}
	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidImage)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidImage)
	}

	res, err := h.recipeService.UploadImage(c.Context(), userID, recipeID, data)
	if err != nil {
		return failed(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) DeleteImage(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedDeleteImage, err)
	}
	recipeID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedDeleteImage, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteImage(c.Context(), userID, recipeID); err != nil {
		return failed(c, domain.MessageFailedDeleteImage, err)
	}

	return presenters.NoContent(c)
}
