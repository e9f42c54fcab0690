package middleware

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/policy"

	"github.com/gofiber/fiber/v2"
)

// RecipeOwner must run after AuthMiddleware and RecipeLoader.
func (m *middleware) RecipeOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principalID, err := CurrentUserID(c)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		found, err := CurrentRecipe(c)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		if err := policy.AuthorizeRecipe(principalID, found); err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		return c.Next()
	}
}

// ProfileOwner must run after AuthMiddleware and UserLoader.
func (m *middleware) ProfileOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principalID, err := CurrentUserID(c)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		found, err := CurrentUser(c)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
		}
		if err := policy.AuthorizeProfile(principalID, found); err != nil {
			return presenters.HandleError(c, domain.MessageFailedUpdateProfile, err)
		}
		return c.Next()
	}
}
