package middleware

import (
	"errors"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// AuthMiddleware accepts "Bearer <token>" or "Token <token>" and stores the
// caller in Locals under user_id and role. Tokens of deactivated or removed
// users are rejected even before they expire.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrUnauthenticated)
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || (!strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token")) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenNotFound)
		}

		userID, role, err := jwtService.GetUserIDByToken(strings.TrimSpace(token))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		if m.users != nil {
			if err := m.users.CheckActive(c.Context(), userID); err != nil {
				if errors.Is(err, domain.ErrUserInactive) ||
					errors.Is(err, domain.ErrUserNotFound) ||
					errors.Is(err, domain.ErrTokenInvalid) {
					return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
				}
				log.Errorf("check user %s: %v", userID, err)
				return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, nil)
			}
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}
