package recipe_test

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"strings"
	"testing"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/testutil"
	"recipe-hub/internal/utils/storage"
	"recipe-hub/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	uploaded []string
	deleted  []string
	reject   bool
}

func (f *fakeS3) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	if f.reject {
		return "", storage.ErrFileTypeNotAllowed
	}
	key := folder + "/" + fileName
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, types ...string) (string, error) {
	return f.UploadFile(ctx, objectKey[strings.LastIndex(objectKey, "/")+1:], file, objectKey[:strings.LastIndex(objectKey, "/")], types...)
}

func (f *fakeS3) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	key, ok := strings.CutPrefix(link, "https://bucket.example.com/")
	if !ok {
		return ""
	}
	return key
}

func soup() domain.RecipeRequest {
	return domain.RecipeRequest{
		Title:        "Soup",
		Description:  "Warm soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: []string{"boil", "season"},
		Category:     "dinner",
	}
}

func create(t *testing.T, svc recipe.RecipeService, req domain.RecipeRequest, owner uuid.UUID) *entities.Recipe {
	t.Helper()
	ctx := context.Background()
	created, err := svc.CreateRecipe(ctx, req, owner)
	require.NoError(t, err)
	found, err := svc.GetRecipeByID(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	return found
}

func TestCreateAndGetRecipe(t *testing.T) {
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	owner := uuid.New()

	r := create(t, svc, soup(), owner)
	assert.Equal(t, owner, r.UserID)
	assert.Equal(t, []string{"water", "salt"}, []string(r.Ingredients))

	detail, err := svc.GetRecipeDetail(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, owner.String(), detail.Author)
	assert.Zero(t, detail.Likes)

	_, err = svc.GetRecipeByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipesPaginatesNewestFirst(t *testing.T) {
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	owner := uuid.New()

	for _, title := range []string{"a", "b", "c"} {
		req := soup()
		req.Title = title
		create(t, svc, req, owner)
	}
	lunch := soup()
	lunch.Title = "d"
	lunch.Category = "lunch"
	create(t, svc, lunch, owner)

	res, err := svc.GetRecipes(context.Background(), domain.ListRecipesRequest{Category: "dinner", Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 2)
	assert.Equal(t, "c", res.Recipes[0].Title)
	assert.Equal(t, "b", res.Recipes[1].Title)
	assert.EqualValues(t, 3, res.Pagination.Total)
	assert.EqualValues(t, 2, res.Pagination.TotalPages)

	res, err = svc.GetRecipes(context.Background(), domain.ListRecipesRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 4)
	assert.Equal(t, 1, res.Pagination.Page)
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	r := create(t, svc, soup(), uuid.New())

	changed, err := svc.UpdateRecipe(ctx, r, soup())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, store.RecipeWrites())

	reordered := soup()
	reordered.Instructions = []string{"season", "boil"}
	changed, err = svc.UpdateRecipe(ctx, r, reordered)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, store.RecipeWrites())

	stored, err := svc.GetRecipeByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"season", "boil"}, []string(stored.Instructions))
}

func TestLikeAndFavoriteAreIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	r := create(t, svc, soup(), uuid.New())
	alice, bob := uuid.New(), uuid.New()

	n, err := svc.LikeRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = svc.LikeRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = svc.LikeRecipe(ctx, r.ID, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = svc.UnlikeRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = svc.UnlikeRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = svc.FavoriteRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = svc.FavoriteRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	favs, err := svc.GetUserFavorites(ctx, alice)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, r.ID.String(), favs[0].ID)

	n, err = svc.UnfavoriteRecipe(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.Zero(t, n)
	favs, err = svc.GetUserFavorites(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestDeleteRecipeCascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	s3 := &fakeS3{}
	svc := recipe.NewRecipeService(store.Recipes(), s3)
	owner := uuid.New()

	withImage := soup()
	image := "https://bucket.example.com/recipes/soup.png"
	withImage.Image = &image
	r := create(t, svc, withImage, owner)

	_, err := svc.FavoriteRecipe(ctx, r.ID, owner)
	require.NoError(t, err)
	require.NoError(t, store.Comments().CreateComment(ctx, &entities.Comment{RecipeID: r.ID, UserID: owner, Text: "yum"}))

	require.NoError(t, svc.DeleteRecipe(ctx, r))

	_, err = svc.GetRecipeByID(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.Zero(t, store.CommentCount(r.ID))
	favs, err := svc.GetUserFavorites(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, favs)
	mine, err := svc.GetUserRecipes(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.Equal(t, []string{"recipes/soup.png"}, s3.deleted)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, r), domain.ErrRecipeNotFound)
}

func TestUploadRecipeImage(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	file := &multipart.FileHeader{Filename: "soup.png"}

	noStorage := recipe.NewRecipeService(store.Recipes(), nil)
	r := create(t, noStorage, soup(), uuid.New())
	_, err := noStorage.UploadRecipeImage(ctx, r, file)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	s3 := &fakeS3{}
	svc := recipe.NewRecipeService(store.Recipes(), s3)

	_, err = svc.UploadRecipeImage(ctx, r, nil)
	assert.ErrorIs(t, err, domain.ErrImageRequired)

	link, err := svc.UploadRecipeImage(ctx, r, file)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/recipes/recipe-"+r.ID.String(), link)

	stored, err := svc.GetRecipeByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, link, stored.ImageURL)

	s3.reject = true
	_, err = svc.UploadRecipeImage(ctx, r, file)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}

func TestRecipeStorageErrorsAreNotDomainErrors(t *testing.T) {
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	boom := errors.New("connection reset")
	store.FailWith(boom)

	_, err := svc.GetRecipeByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateRecipeReleasesReplacedImage(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	s3 := &fakeS3{}
	svc := recipe.NewRecipeService(store.Recipes(), s3)

	req := soup()
	uploaded := "https://bucket.example.com/recipes/soup.png"
	req.Image = &uploaded
	r := create(t, svc, req, uuid.New())

	external := "https://cdn.example.com/soup.png"
	req.Image = &external
	changed, err := svc.UpdateRecipe(ctx, r, req)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"recipes/soup.png"}, s3.deleted)

	cleared := ""
	req.Image = &cleared
	changed, err = svc.UpdateRecipe(ctx, r, req)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, r.ImageURL)
	assert.Equal(t, []string{"recipes/soup.png"}, s3.deleted)

	req.Image = nil
	req.Title = "Renamed"
	_, err = svc.UpdateRecipe(ctx, r, req)
	require.NoError(t, err)
	assert.Len(t, s3.deleted, 1)
}

func TestGetRecipesClampsPaging(t *testing.T) {
	store := testutil.NewStore()
	svc := recipe.NewRecipeService(store.Recipes(), nil)
	create(t, svc, soup(), uuid.New())

	tests := []struct {
		name      string
		req       domain.ListRecipesRequest
		wantPage  int
		wantLimit int
		wantLen   int
	}{
		{"defaults", domain.ListRecipesRequest{}, 1, 20, 1},
		{"limit capped", domain.ListRecipesRequest{Page: 1, Limit: 5000}, 1, 100, 1},
		{"huge page stays past the end", domain.ListRecipesRequest{Page: math.MaxInt, Limit: 100}, math.MaxInt32, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.GetRecipes(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, res.Pagination.Page)
			assert.Equal(t, tt.wantLimit, res.Pagination.Limit)
			assert.Len(t, res.Recipes, tt.wantLen)
		})
	}
}
