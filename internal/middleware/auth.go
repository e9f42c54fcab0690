package middleware

import (
	"strings"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware answers 401 when no credential is supplied and 403 when the
// supplied one does not verify. It trusts the token and does not look the
// principal up.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenNotFound)
		}

		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		claims, err := jwtService.ValidateTokenUser(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(LocalUserID, claims.PrincipalID())
		return c.Next()
	}
}
