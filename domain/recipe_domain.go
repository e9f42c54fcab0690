package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "Recipe created successfully"
	MessageSuccessUpdateRecipe    = "Recipe updated successfully"
	MessageRecipeUnchanged        = "No changes detected, recipe remains the same"
	MessageSuccessDeleteRecipe    = "Recipe deleted successfully"
	MessageSuccessUploadImage     = "Recipe image uploaded successfully"
	MessageSuccessLikeRecipe      = "Recipe liked successfully"
	MessageSuccessUnlikeRecipe    = "Recipe unliked successfully"
	MessageSuccessFavoriteRecipe  = "Recipe favorited successfully"
	MessageSuccessUnfavorite      = "Recipe unfavorited successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedLikeRecipe      = "failed to like recipe"
	MessageFailedFavoriteRecipe  = "failed to favorite recipe"

	ErrRecipeNotFound           = errors.New("Recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("Unauthorized to modify this recipe")
	ErrInvalidImageFormat       = errors.New("invalid image format")
	ErrImageRequired            = errors.New("image file is required")
	ErrStorageUnavailable       = errors.New("image storage is not configured")
)

type (
	RecipeRequest struct {
		Title        string   `json:"title" validate:"required" msg:"Title is required"`
		Description  string   `json:"description" validate:"required" msg:"Description is required"`
		Ingredients  []string `json:"ingredients" validate:"min=1,dive,required" msg:"At least one ingredient is required"`
		Instructions []string `json:"instructions" validate:"min=1,dive,required" msg:"At least one instruction is required"`
		Category     string   `json:"category" validate:"required" msg:"Category is required"`
		Image        *string  `json:"image" validate:"omitempty,url" msg:"Image must be a valid URL"`
	}

	ListRecipesRequest struct {
		Category string
		Page     int
		Limit    int
	}

	Recipe struct {
		ID           string    `json:"id"`
		Author       string    `json:"author"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		Ingredients  []string  `json:"ingredients"`
		Instructions []string  `json:"instructions"`
		Category     string    `json:"category"`
		Image        string    `json:"image"`
		Likes        int64     `json:"likes"`
		Favorites    int64     `json:"favorites"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe           `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}

	LikeResponse struct {
		Likes int64 `json:"likes"`
	}

	FavoriteResponse struct {
		Favorites int64 `json:"favorites"`
	}

	UploadImageResponse struct {
		Image string `json:"image"`
	}
)

func (r *RecipeRequest) Sanitize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Ingredients = trimAll(r.Ingredients)
	r.Instructions = trimAll(r.Instructions)
	if r.Image != nil {
		image := strings.TrimSpace(*r.Image)
		r.Image = &image
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// SameContent reports whether applying the request to a recipe with the given
// fields would leave it unchanged. A nil Image means "keep the current image".
func (r RecipeRequest) SameContent(title, description, category, image string, ingredients, instructions []string) bool {
	if r.Title != title || r.Description != description || r.Category != category {
		return false
	}
	if r.Image != nil && *r.Image != image {
		return false
	}
	return slices.Equal(r.Ingredients, ingredients) && slices.Equal(r.Instructions, instructions)
}
