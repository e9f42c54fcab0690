package middleware

import (
	"strings"

	"recipe-hub/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const messageOriginNotAllowed = "Not allowed by CORS"

// CORSMiddleware lets requests without an Origin header through (curl,
// server-to-server), rejects unlisted origins with 403, and decorates allowed
// ones with the usual CORS headers.
func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := make([]string, 0, len(m.allowedOrigins))
	for o := range m.allowedOrigins {
		origins = append(origins, o)
	}

	cfg := cors.Config{
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = strings.Join(origins, ",")
	}
	decorate := cors.New(cfg)

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if _, ok := m.allowedOrigins[strings.TrimRight(origin, "/")]; !ok {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, messageOriginNotAllowed, fiber.ErrForbidden)
		}
		return decorate(c)
	}
}
