package handlers

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/middleware"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		GetUserRecipes(c *fiber.Ctx) error
		GetUserFavorites(c *fiber.Ctx) error
	}

	userHandler struct {
		userService   user.UserService
		recipeService recipe.RecipeService
	}
)

func NewUserHandler(userService user.UserService, recipeService recipe.RecipeService) UserHandler {
	return &userHandler{
		userService:   userService,
		recipeService: recipeService,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req, err := middleware.Body[domain.RegisterRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	if err := h.userService.Register(c.UserContext(), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req, err := middleware.Body[domain.LoginRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) GetProfile(c *fiber.Ctx) error {
	found, err := middleware.CurrentUser(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, user.ToProfile(found), fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *userHandler) UpdateProfile(c *fiber.Ctx) error {
	found, err := middleware.CurrentUser(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateProfile, err)
	}
	req, err := middleware.Body[domain.UpdateProfileRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	changed, err := h.userService.UpdateProfile(c.UserContext(), found, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateProfile, err)
	}
	if !changed {
		return presenters.SuccessResponse(c, user.ToProfile(found), fiber.StatusOK, domain.MessageProfileUnchanged)
	}

	return presenters.SuccessResponse(c, user.ToProfile(found), fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *userHandler) GetUserRecipes(c *fiber.Ctx) error {
	found, err := middleware.CurrentUser(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUserRecipes, err)
	}

	recipes, err := h.recipeService.GetUserRecipes(c.UserContext(), found.ID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUserRecipes, err)
	}
	if len(recipes) == 0 {
		return presenters.SuccessResponse(c, domain.MessageNoUserRecipes, fiber.StatusOK, domain.MessageNoUserRecipes)
	}

	return presenters.SuccessResponse(c, recipes, fiber.StatusOK, domain.MessageSuccessGetUserRecipes)
}

func (h *userHandler) GetUserFavorites(c *fiber.Ctx) error {
	found, err := middleware.CurrentUser(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUserFavorites, err)
	}

	recipes, err := h.recipeService.GetUserFavorites(c.UserContext(), found.ID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUserFavorites, err)
	}

	return presenters.SuccessResponse(c, recipes, fiber.StatusOK, domain.MessageSuccessGetUserFavorites)
}
