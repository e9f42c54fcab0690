package routes

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/middleware"
	"recipe-hub/pkg/jwt"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"

	"github.com/gofiber/fiber/v2"
)

// Config wires handlers into request pipelines. Every pipeline runs in the
// same order: path ids, body, authentication, entity loading, ownership,
// then the handler.
type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CommentHandler handlers.CommentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
	UserService    user.UserService
	RecipeService  recipe.RecipeService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()

	api := c.App.Group("/api")
	c.Auth(api)
	c.User(api)
	c.Recipe(api)
	c.Comment(api)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

func (c *Config) Auth(api fiber.Router) {
	auth := api.Group("/auth")
	auth.Post("/register", middleware.ValidateBody[domain.RegisterRequest](), c.UserHandler.Register)
	auth.Post("/login", middleware.ValidateBody[domain.LoginRequest](), c.UserHandler.Login)
}

func (c *Config) User(api fiber.Router) {
	profile := api.Group("/user/:userId", c.Middleware.ValidateParamID("userId"))
	authenticate := c.Middleware.AuthMiddleware(c.JWTService)
	load := c.Middleware.UserLoader(c.UserService)

	profile.Get("", load, c.UserHandler.GetProfile)
	profile.Put("",
		middleware.ValidateBody[domain.UpdateProfileRequest](),
		authenticate,
		load,
		c.Middleware.ProfileOwner(),
		c.UserHandler.UpdateProfile,
	)
	profile.Get("/recipes", load, c.UserHandler.GetUserRecipes)
	profile.Get("/favorites", load, c.UserHandler.GetUserFavorites)
}

func (c *Config) Recipe(api fiber.Router) {
	authenticate := c.Middleware.AuthMiddleware(c.JWTService)
	load := c.Middleware.RecipeLoader(c.RecipeService)
	owner := c.Middleware.RecipeOwner()

	api.Get("/recipes", c.RecipeHandler.GetRecipes)
	api.Post("/recipes", middleware.ValidateBody[domain.RecipeRequest](), authenticate, c.RecipeHandler.CreateRecipe)

	// checked per route so nested comment routes report all their ids
	recipeID := c.Middleware.ValidateParamID("recipeId")
	single := api.Group("/recipes/:recipeId")
	single.Get("", recipeID, load, c.RecipeHandler.GetRecipeDetail)
	single.Put("", recipeID, middleware.ValidateBody[domain.RecipeRequest](), authenticate, load, owner, c.RecipeHandler.UpdateRecipe)
	single.Delete("", recipeID, authenticate, load, owner, c.RecipeHandler.DeleteRecipe)
	single.Post("/upload-image", recipeID, authenticate, load, owner, c.RecipeHandler.UploadRecipeImage)

	// Recipe actions like liking and favoriting
	single.Post("/like", recipeID, authenticate, load, c.RecipeHandler.LikeRecipe)
	single.Delete("/like", recipeID, authenticate, load, c.RecipeHandler.UnlikeRecipe)
	single.Post("/favorite", recipeID, authenticate, load, c.RecipeHandler.FavoriteRecipe)
	single.Delete("/favorite", recipeID, authenticate, load, c.RecipeHandler.UnfavoriteRecipe)
}

func (c *Config) Comment(api fiber.Router) {
	authenticate := c.Middleware.AuthMiddleware(c.JWTService)

	comments := api.Group("/recipes/:recipeId/comments")
	comments.Get("", c.Middleware.ValidateParamID("recipeId"), c.CommentHandler.GetComments)
	comments.Post("",
		c.Middleware.ValidateParamID("recipeId"),
		middleware.ValidateBody[domain.AddCommentRequest](),
		authenticate,
		c.CommentHandler.AddComment,
	)
	comments.Delete("/:commentId",
		c.Middleware.ValidateParamID("recipeId", "commentId"),
		authenticate,
		c.CommentHandler.DeleteComment,
	)
}
