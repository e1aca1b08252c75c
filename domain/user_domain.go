package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "success get user"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get user"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrCredentialsNotMatched = errors.New("unable to authenticate with provided credentials")
	ErrUserInactive          = errors.New("user is inactive")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=5,max=128"`
		Name     string `json:"name" validate:"max=255"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
)
