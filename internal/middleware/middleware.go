package middleware

import (
	"context"

	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	// UserChecker reports whether the token subject may still use the API.
	UserChecker interface {
		CheckActive(ctx context.Context, userID string) error
	}

	middleware struct {
		users UserChecker
	}
)

// NewMiddleware builds the shared middlewares. With a nil checker any
// validly signed token is accepted.
func NewMiddleware(users UserChecker) Middleware {
	return &middleware{users: users}
}
