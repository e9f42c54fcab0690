package middleware

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ValidateBody decodes the JSON body into a T, sanitizes and validates it, and
// stores it for the handler. Every field is checked; the 400 lists all
// failures at once.
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
			}
		}

		errs, err := utils.ValidateStruct(req)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidation, err)
		}
		if len(errs) > 0 {
			return presenters.ValidationErrorResponse(c, errs)
		}

		c.Locals(LocalBody, req)
		return c.Next()
	}
}
