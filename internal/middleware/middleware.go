package middleware

import (
	"net/url"
	"strings"

	"recipe-hub/pkg/jwt"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		ValidateParamID(params ...string) fiber.Handler
		RecipeLoader(recipeService recipe.RecipeService) fiber.Handler
		UserLoader(userService user.UserService) fiber.Handler
		RecipeOwner() fiber.Handler
		ProfileOwner() fiber.Handler
	}

	middleware struct {
		allowedOrigins map[string]struct{}
	}
)

// NewMiddleware keeps the well-formed origins of allowedOrigins; blanks and
// malformed entries are dropped.
func NewMiddleware(allowedOrigins []string) Middleware {
	m := &middleware{allowedOrigins: make(map[string]struct{}, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" {
			log.Warnf("ignoring malformed CORS origin %q", o)
			continue
		}
		m.allowedOrigins[o] = struct{}{}
	}
	return m
}
