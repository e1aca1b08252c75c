package handlers

import (
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/tag"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TagHandler interface {
		GetTags(c *fiber.Ctx) error
		GetTag(c *fiber.Ctx) error
		CreateTag(c *fiber.Ctx) error
		UpdateTag(c *fiber.Ctx) error
		DeleteTag(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService tag.TagService
		validator  *validator.Validate
	}
)

func NewTagHandler(tagService tag.TagService, validator *validator.Validate) TagHandler {
	return &tagHandler{
		tagService: tagService,
		validator:  validator,
	}
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetTags, err)
	}

	res, err := h.tagService.GetTags(c.Context(), userID, isTruthy(c.Query("assigned_only")))
	if err != nil {
		return failed(c, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *tagHandler) GetTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetTag, err)
	}
	tagID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedGetTag, domain.ErrTagNotFound)
	}

	res, err := h.tagService.GetTagByID(c.Context(), userID, tagID)
	if err != nil {
		return failed(c, domain.MessageFailedGetTag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTag)
}

func (h *tagHandler) CreateTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedCreateTag, err)
	}
	req := new(domain.TagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTag, err)
	}

	res, created, err := h.tagService.CreateTag(c.Context(), userID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedCreateTag, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return presenters.SuccessResponse(c, res, status, domain.MessageSuccessCreateTag)
}

func (h *tagHandler) UpdateTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateTag, err)
	}
	tagID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedUpdateTag, domain.ErrTagNotFound)
	}
	req := new(domain.TagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTag, err)
	}

	res, err := h.tagService.UpdateTag(c.Context(), userID, tagID, *req)
	if err != nil {
		return failed(c, domain.MessageFailedUpdateTag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTag)
}

func (h *tagHandler) DeleteTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return failed(c, domain.MessageFailedDeleteTag, err)
	}
	tagID, ok := paramID(c)
	if !ok {
		return failed(c, domain.MessageFailedDeleteTag, domain.ErrTagNotFound)
	}

	if err := h.tagService.DeleteTag(c.Context(), userID, tagID); err != nil {
		return failed(c, domain.MessageFailedDeleteTag, err)
	}

	return presenters.NoContent(c)
}
