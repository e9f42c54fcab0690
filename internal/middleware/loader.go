package middleware

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var paramMessages = map[string]string{
	"recipeId":  "Invalid recipe ID",
	"commentId": "Invalid comment ID",
	"userId":    "Valid userId is required",
}

func parseID(raw string) (uuid.UUID, error) {
	return utils.ValidateID(raw)
}

func invalidParam(param string) domain.FieldError {
	msg, ok := paramMessages[param]
	if !ok {
		msg = "Invalid " + param
	}
	return domain.FieldError{Field: param, Message: msg}
}

// ValidateParamID checks every named path parameter is a well-formed id and
// reports all malformed ones in a single 400.
func (m *middleware) ValidateParamID(params ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids := make(map[string]uuid.UUID, len(params))
		var errs []domain.FieldError
		for _, p := range params {
			id, err := parseID(c.Params(p))
			if err != nil {
				errs = append(errs, invalidParam(p))
				continue
			}
			ids[p] = id
		}
		if len(errs) > 0 {
			return presenters.ValidationErrorResponse(c, errs)
		}
		c.Locals(localParamIDs, ids)
		return c.Next()
	}
}

// RecipeLoader resolves :recipeId with a single lookup and stores the recipe
// for later stages.
func (m *middleware) RecipeLoader(recipeService recipe.RecipeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ParamID(c, "recipeId")
		if err != nil {
			return presenters.ValidationErrorResponse(c, []domain.FieldError{invalidParam("recipeId")})
		}

		found, err := recipeService.GetRecipeByID(c.UserContext(), id)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
		}

		c.Locals(LocalRecipe, found)
		return c.Next()
	}
}

// UserLoader resolves :userId the same way RecipeLoader does for recipes.
func (m *middleware) UserLoader(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ParamID(c, "userId")
		if err != nil {
			return presenters.ValidationErrorResponse(c, []domain.FieldError{invalidParam("userId")})
		}

		found, err := userService.GetUserByID(c.UserContext(), id)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedGetProfile, err)
		}

		c.Locals(LocalUser, found)
		return c.Next()
	}
}
