package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/api/routes"
	"recipe-hub/internal/middleware"
	"recipe-hub/internal/utils"
	"recipe-hub/internal/utils/ratelimit"
	"recipe-hub/internal/utils/storage"
	"recipe-hub/pkg/comment"
	"recipe-hub/pkg/jwt"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not configured")

// dependencies are everything the app needs besides configuration that is
// read once at startup. Tests build them in memory.
type dependencies struct {
	userRepository    user.UserRepository
	recipeRepository  recipe.RecipeRepository
	commentRepository comment.CommentRepository
	jwtService        jwt.JWTService
	s3                storage.AwsS3
	limiterStorage    fiber.Storage
	rateLimitMax      int
	logOutput         io.Writer
	allowedOrigins    []string
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.LoadConfig()

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	// setting up logging
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	// image storage is optional; uploads answer 503 without it
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		log.Warnf("image uploads disabled: %v", err)
		s3 = nil
	}

	var limiterStorage fiber.Storage
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		limiterStorage = ratelimit.NewRedisStorage(addr, utils.GetConfig("REDIS_PASSWORD"))
	}

	return newApp(dependencies{
		userRepository:    user.NewUserRepository(db),
		recipeRepository:  recipe.NewRecipeRepository(db),
		commentRepository: comment.NewCommentRepository(db),
		jwtService:        jwt.NewJWTServiceWithSecret(secret),
		s3:                s3,
		limiterStorage:    limiterStorage,
		rateLimitMax:      utils.GetRateLimitMax(),
		logOutput:         file,
		allowedOrigins:    utils.GetAllowedOrigins(),
	}), nil
}

func newApp(deps dependencies) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: presenters.ErrorHandler,
	})
	middlewares := middleware.NewMiddleware(deps.allowedOrigins)

	app.Use(recover.New())
	if deps.logOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Output:     deps.logOutput,
		}))
	}
	if deps.rateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.rateLimitMax,
			Expiration: 1 * time.Second,
			Storage:    deps.limiterStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, "Too many requests", nil)
			},
		}))
	}

	// Service
	userService := user.NewUserService(deps.userRepository, deps.jwtService)
	recipeService := recipe.NewRecipeService(deps.recipeRepository, deps.s3)
	commentService := comment.NewCommentService(deps.commentRepository, deps.recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, recipeService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		CommentHandler: commentHandler,
		Middleware:     middlewares,
		JWTService:     deps.jwtService,
		UserService:    userService,
		RecipeService:  recipeService,
	}
	routesConfig.Setup()
	return app
}
