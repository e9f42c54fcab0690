package handlers

import (
	"context"
	"strconv"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/middleware"
	"recipe-hub/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		LikeRecipe(c *fiber.Ctx) error
		UnlikeRecipe(c *fiber.Ctx) error
		FavoriteRecipe(c *fiber.Ctx) error
		UnfavoriteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	// Parse pagination parameters
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	limit = min(limit, 100)

	res, err := h.recipeService.GetRecipes(c.UserContext(), domain.ListRecipesRequest{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	req, err := middleware.Body[domain.RecipeRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	found, err := middleware.CurrentRecipe(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipeDetail(c.UserContext(), found)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	found, err := middleware.CurrentRecipe(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	req, err := middleware.Body[domain.RecipeRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	changed, err := h.recipeService.UpdateRecipe(c.UserContext(), found, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	if !changed {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageRecipeUnchanged)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	found, err := middleware.CurrentRecipe(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), found); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	found, err := middleware.CurrentRecipe(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrImageRequired)
	}

	link, err := h.recipeService.UploadRecipeImage(c.UserContext(), found, file)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, domain.UploadImageResponse{Image: link}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) LikeRecipe(c *fiber.Ctx) error {
	return h.toggle(c, h.recipeService.LikeRecipe, domain.MessageSuccessLikeRecipe, domain.MessageFailedLikeRecipe, likes)
}

func (h *recipeHandler) UnlikeRecipe(c *fiber.Ctx) error {
	return h.toggle(c, h.recipeService.UnlikeRecipe, domain.MessageSuccessUnlikeRecipe, domain.MessageFailedLikeRecipe, likes)
}

func (h *recipeHandler) FavoriteRecipe(c *fiber.Ctx) error {
	return h.toggle(c, h.recipeService.FavoriteRecipe, domain.MessageSuccessFavoriteRecipe, domain.MessageFailedFavoriteRecipe, favorites)
}

func (h *recipeHandler) UnfavoriteRecipe(c *fiber.Ctx) error {
	return h.toggle(c, h.recipeService.UnfavoriteRecipe, domain.MessageSuccessUnfavorite, domain.MessageFailedFavoriteRecipe, favorites)
}

func likes(n int64) any     { return domain.LikeResponse{Likes: n} }
func favorites(n int64) any { return domain.FavoriteResponse{Favorites: n} }

// toggle runs one membership change for the authenticated principal on the
// loaded recipe and answers with the resulting count.
func (h *recipeHandler) toggle(
	c *fiber.Ctx,
	apply func(ctx context.Context, recipeID, userID uuid.UUID) (int64, error),
	successMessage, failedMessage string,
	render func(int64) any,
) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return presenters.HandleError(c, failedMessage, err)
	}
	found, err := middleware.CurrentRecipe(c)
	if err != nil {
		return presenters.HandleError(c, failedMessage, err)
	}

	count, err := apply(c.UserContext(), found.ID, userID)
	if err != nil {
		return presenters.HandleError(c, failedMessage, err)
	}

	return presenters.SuccessResponse(c, render(count), fiber.StatusOK, successMessage)
}
