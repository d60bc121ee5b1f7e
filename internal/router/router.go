package router

import (
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/recipebook/backend/internal/handlers"
	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/middleware"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/push"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/anonto42/recipebook/backend/internal/storage"
	"github.com/anonto42/recipebook/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// hubBuffer is how many events a slow stream subscriber may lag behind
const hubBuffer = 16

// Dependencies are the external clients the routes are built on.
// AuthClient may be nil when Firebase is not configured.
type Dependencies struct {
	Config     *config.Config
	Postgres   *gorm.DB
	Mongo      *mongo.Database
	AuthClient *auth.Client
	Pusher     push.Sender
	Blobs      storage.BlobStore
	Metrics    metrics.Recorder
	Logger     *slog.Logger
}

// Migrate creates or updates the relational tables
func Migrate(pgdb *gorm.DB) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
		&models.Report{},
		&models.VerificationRequest{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes and injects dependencies.
// The returned function blocks until in-flight notification pushes finish.
func SetupRoutes(e *echo.Echo, deps Dependencies) func() {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	blobs := deps.Blobs
	if blobs == nil {
		blobs = storage.Disabled{}
	}
	// A nil *auth.Client must not end up inside a non-nil interface.
	var verifier services.IDTokenVerifier
	if deps.AuthClient != nil {
		verifier = deps.AuthClient
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.Postgres)
	reportRepo := repositories.NewPostgresReportRepository(deps.Postgres)
	verificationRepo := repositories.NewPostgresVerificationRepository(deps.Postgres)
	recipeRepo := repositories.NewMongoRecipeRepository(deps.Mongo)
	savedRepo := repositories.NewMongoSavedPostRepository(deps.Mongo)
	chatRepo := repositories.NewMongoChatRepository(deps.Mongo)

	// --- Services ---
	hub := live.NewHub(hubBuffer)
	notifier := services.NewNotifier(userRepo, notificationRepo, hub, deps.Pusher, deps.Metrics, logger)
	authService := services.NewAuthService(userRepo, verifier, deps.Config.JWTSecret)
	graph := services.NewSocialGraphService(userRepo, followRepo, deps.Metrics)
	recipes := services.NewRecipeService(recipeRepo, userRepo, savedRepo, blobs, hub, logger)
	feed := services.NewFeedService(recipeRepo, userRepo, followRepo, savedRepo, hub, deps.Metrics, logger)
	engagement := services.NewEngagementService(recipeRepo, savedRepo, notifier, hub, deps.Metrics)
	comments := services.NewCommentService(recipeRepo, userRepo, notifier, hub)
	users := services.NewUserService(userRepo, recipeRepo, graph, blobs)
	moderation := services.NewModerationService(userRepo, reportRepo, verificationRepo, recipes, blobs, logger)
	messaging := services.NewMessagingService(chatRepo, userRepo, hub)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(config.RateLimiter(deps.Config.RateLimit))
	if deps.Config.AuthMode == config.AuthModeFirebase && verifier != nil {
		api.Use(middleware.FirebaseAuthMiddleware(verifier, authService))
		logger.Info("firebase bearer authentication applied to /api/v1")
	} else {
		if deps.Config.AuthMode == config.AuthModeFirebase {
			logger.Warn("AUTH_MODE=firebase without a firebase client, falling back to session tokens")
		}
		api.Use(middleware.JWTAuthMiddleware(authService))
		logger.Info("session token authentication applied to /api/v1")
	}

	handlers.NewUserHandler(users, recipes).RegisterProfileRoutes(api)
	handlers.NewRecipeHandler(recipes).RegisterRecipeRoutes(api)
	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api)
	handlers.NewLikeHandler(engagement).RegisterLikeRoutes(api)
	handlers.NewSavedPostHandler(engagement).RegisterSavedPostRoutes(api)
	handlers.NewCommentHandler(comments).RegisterCommentRoutes(api)
	handlers.NewFollowHandler(graph).RegisterFollowRoutes(api)
	handlers.NewNotificationHandler(notifier).RegisterNotificationRoutes(api)
	handlers.NewChatHandler(messaging).RegisterChatRoutes(api)
	handlers.NewReportHandler(moderation).RegisterReportRoutes(api)

	admin := api.Group("/admin", middleware.RequireAdmin())
	handlers.NewAdminHandler(moderation).RegisterAdminRoutes(admin)

	logger.Info("all routes configured")
	return notifier.Wait
}
