package middleware

import (
	"recipe-hub/domain"
	"recipe-hub/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Keys under which pipeline stages hand values to later stages.
const (
	LocalUserID   = "user_id"
	LocalUser     = "found_user"
	LocalRecipe   = "recipe"
	LocalBody     = "body"
	localParamIDs = "param_ids"
)

func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, domain.ErrPrincipalAbsent
	}
	return id, nil
}

func CurrentRecipe(c *fiber.Ctx) (*entities.Recipe, error) {
	r, ok := c.Locals(LocalRecipe).(*entities.Recipe)
	if !ok || r == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

func CurrentUser(c *fiber.Ctx) (*entities.User, error) {
	u, ok := c.Locals(LocalUser).(*entities.User)
	if !ok || u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// ParamID returns a path identifier checked by ValidateParamID, parsing it
// again if the route skipped that stage.
func ParamID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	if ids, ok := c.Locals(localParamIDs).(map[string]uuid.UUID); ok {
		if id, ok := ids[param]; ok {
			return id, nil
		}
	}
	return parseID(c.Params(param))
}

// Body returns the request body decoded by ValidateBody.
func Body[T any](c *fiber.Ctx) (*T, error) {
	body, ok := c.Locals(LocalBody).(*T)
	if !ok || body == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, domain.MessageFailedBodyRequest)
	}
	return body, nil
}
