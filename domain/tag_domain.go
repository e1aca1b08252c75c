package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessGetTag    = "success get tag"
	MessageSuccessCreateTag = "tag created successfully"
	MessageSuccessUpdateTag = "tag updated successfully"

	MessageFailedGetTags   = "failed to get tags"
	MessageFailedGetTag    = "failed to get tag"
	MessageFailedCreateTag = "failed to create tag"
	MessageFailedUpdateTag = "failed to update tag"
	MessageFailedDeleteTag = "failed to delete tag"

	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = fmt.Errorf("%w: tag with this name already exists", ErrValidation)
)

type (
	TagRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	TagResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
)
