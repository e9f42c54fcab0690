package recipe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error)
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, recipe *entities.Recipe) (domain.Recipe, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID uuid.UUID) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, req domain.RecipeRequest) (bool, error)
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		UploadRecipeImage(ctx context.Context, recipe *entities.Recipe, image *multipart.FileHeader) (string, error)

		LikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error)
		UnlikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error)
		FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error)
		UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error)

		GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error)
		GetUserFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

// NewRecipeService accepts a nil s3; image uploads then fail with
// domain.ErrStorageUnavailable.
func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func toRecipe(r *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:           r.ID.String(),
		Author:       r.UserID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  append([]string{}, r.Ingredients...),
		Instructions: append([]string{}, r.Instructions...),
		Category:     r.Category,
		Image:        r.ImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipes(rs []*entities.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecipe(r))
	}
	return out
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultPageSize
	}
	// bounds keep (page-1)*limit far from overflowing into a negative offset
	req.Limit = min(req.Limit, maxPageSize)
	req.Page = min(req.Page, maxPage)

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, RecipeFilter{Category: req.Category}, req.Page, req.Limit)
	if err != nil {
		return domain.RecipeListResponse{}, fmt.Errorf("list recipes: %w", err)
	}

	return domain.RecipeListResponse{
		Recipes: toRecipes(recipes),
		Pagination: domain.PaginationResponse{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      count,
			TotalPages: (count + int64(req.Limit) - 1) / int64(req.Limit),
		},
	}, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipe *entities.Recipe) (domain.Recipe, error) {
	res := toRecipe(recipe)

	likes, err := s.recipeRepository.CountLikes(ctx, recipe.ID)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("count likes: %w", err)
	}
	favorites, err := s.recipeRepository.CountFavorites(ctx, recipe.ID)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("count favorites: %w", err)
	}

	res.Likes = likes
	res.Favorites = favorites
	return res, nil
}

// CreateRecipe is a single insert; ownership lives on the recipe row so there
// is no second write linking it to the principal.
func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID uuid.UUID) (domain.Recipe, error) {
	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  datatypes.JSONSlice[string](req.Ingredients),
		Instructions: datatypes.JSONSlice[string](req.Instructions),
		Category:     req.Category,
	}
	if req.Image != nil {
		recipe.ImageURL = *req.Image
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	return toRecipe(recipe), nil
}

// UpdateRecipe reports false without writing when req matches the stored
// recipe field for field, including list order.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, req domain.RecipeRequest) (bool, error) {
	if req.SameContent(recipe.Title, recipe.Description, recipe.Category, recipe.ImageURL, recipe.Ingredients, recipe.Instructions) {
		return false, nil
	}

	updated := *recipe
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Ingredients = datatypes.JSONSlice[string](req.Ingredients)
	updated.Instructions = datatypes.JSONSlice[string](req.Instructions)
	updated.Category = req.Category
	if req.Image != nil {
		updated.ImageURL = *req.Image
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, &updated); err != nil {
		return false, fmt.Errorf("update recipe: %w", err)
	}
	if updated.ImageURL != recipe.ImageURL {
		s.deleteImage(ctx, recipe.ID, recipe.ImageURL)
	}
	*recipe = updated
	return true, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.deleteImage(ctx, recipe.ID, recipe.ImageURL)
	return nil
}

// deleteImage removes an uploaded image that is no longer referenced. Links
// outside the bucket are left alone; failures are logged, not returned.
func (s *recipeService) deleteImage(ctx context.Context, recipeID uuid.UUID, link string) {
	if s.s3 == nil || link == "" {
		return
	}
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Errorw("failed to delete recipe image", "recipe_id", recipeID, "error", err)
	}
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipe *entities.Recipe, image *multipart.FileHeader) (string, error) {
	if s.s3 == nil {
		return "", domain.ErrStorageUnavailable
	}
	if image == nil {
		return "", domain.ErrImageRequired
	}

	var objectKey string
	var err error
	if existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); existingKey != "" {
		objectKey, err = s.s3.UpdateFile(ctx, existingKey, image, storage.AllowImage...)
	} else {
		fileName := fmt.Sprintf("recipe-%s", recipe.ID.String())
		objectKey, err = s.s3.UploadFile(ctx, fileName, image, "recipes", storage.AllowImage...)
	}
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return "", domain.ErrInvalidImageFormat
		}
		return "", fmt.Errorf("upload recipe image: %w", err)
	}

	updated := *recipe
	updated.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateRecipe(ctx, &updated); err != nil {
		return "", fmt.Errorf("update recipe image: %w", err)
	}
	*recipe = updated
	return recipe.ImageURL, nil
}

func (s *recipeService) LikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error) {
	if err := s.recipeRepository.AddLike(ctx, recipeID, userID); err != nil {
		return 0, fmt.Errorf("add like: %w", err)
	}
	return s.recipeRepository.CountLikes(ctx, recipeID)
}

func (s *recipeService) UnlikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error) {
	if err := s.recipeRepository.RemoveLike(ctx, recipeID, userID); err != nil {
		return 0, fmt.Errorf("remove like: %w", err)
	}
	return s.recipeRepository.CountLikes(ctx, recipeID)
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error) {
	if err := s.recipeRepository.AddFavorite(ctx, recipeID, userID); err != nil {
		return 0, fmt.Errorf("add favorite: %w", err)
	}
	return s.recipeRepository.CountFavorites(ctx, recipeID)
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) (int64, error) {
	if err := s.recipeRepository.RemoveFavorite(ctx, recipeID, userID); err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}
	return s.recipeRepository.CountFavorites(ctx, recipeID)
}

func (s *recipeService) GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user recipes: %w", err)
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) GetUserFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user favorites: %w", err)
	}
	return toRecipes(recipes), nil
}
