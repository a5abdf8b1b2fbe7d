package router

import (
	"github.com/anonto42/socialconnect/backend/internal/handlers"
	"github.com/anonto42/socialconnect/backend/internal/middleware"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/realtime"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/anonto42/socialconnect/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// Dependencies are the long-lived handles the routes are built from.
type Dependencies struct {
	Postgres *gorm.DB
	// Posts overrides the PostgreSQL post store, e.g. with MongoPostRepository.
	Posts     repositories.PostRepository
	Publisher realtime.Publisher
	Logger    *log.Logger
	JWTSecret string
	// Firebase switches /api/v1 from JWT to Firebase ID token auth.
	Firebase middleware.TokenVerifier
}

// Services bundles every service so cmd/ binaries can reuse the wiring.
type Services struct {
	Counter      *services.CounterService
	Notification *services.NotificationService
	Follow       *services.FollowService
	Like         *services.LikeService
	Comment      *services.CommentService
	Feed         *services.FeedService
	Post         *services.PostService
	User         *services.UserService
	Stats        *services.StatsService
}

// NewServices constructs the repositories and services over deps.
func NewServices(deps Dependencies, validator *validators.CustomValidator) *Services {
	pgdb := deps.Postgres

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	var postRepo repositories.PostRepository = repositories.NewPostgresPostRepository(pgdb)
	if deps.Posts != nil {
		postRepo = deps.Posts
	}

	logger := deps.Logger
	counters := services.NewCounterService(likeRepo, commentRepo, postRepo, logger)
	notifications := services.NewNotificationService(notificationRepo, userRepo, deps.Publisher, logger)

	return &Services{
		Counter:      counters,
		Notification: notifications,
		Follow:       services.NewFollowService(followRepo, userRepo, notifications, logger),
		Like:         services.NewLikeService(likeRepo, postRepo, counters, notifications, logger),
		Comment:      services.NewCommentService(commentRepo, postRepo, counters, notifications, validator, logger),
		Feed:         services.NewFeedService(followRepo, postRepo, userRepo, logger),
		Post:         services.NewPostService(postRepo, validator, logger),
		User:         services.NewUserService(userRepo, followRepo, postRepo, logger),
		Stats:        services.NewStatsService(userRepo, postRepo, likeRepo, commentRepo, followRepo, notificationRepo, logger),
	}
}

// SetupRoutes migrates the relational schema and registers every route.
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if err := models.Migrate(deps.Postgres, deps.Posts == nil); err != nil {
		return err
	}
	deps.Logger.Info("PostgreSQL auto-migrations completed for all models.")

	validator := validators.NewValidator()
	e.Validator = validator
	svc := NewServices(deps, validator)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")
	if deps.Firebase != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.Firebase, svc.User))
		deps.Logger.Info("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret, svc.User))
		deps.Logger.Info("JWT authentication middleware applied to /api/v1 group.")
	}

	handlers.NewUserHandler(svc.User).RegisterProfileRoutes(api)
	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(api)
	handlers.NewPostHandler(svc.Post).RegisterPostRoutes(api)
	handlers.NewFollowHandler(svc.Follow).RegisterFollowRoutes(api)
	handlers.NewLikeHandler(svc.Like).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(svc.Comment).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(svc.Notification).RegisterNotificationRoutes(api)

	admin := api.Group("/admin", middleware.RequireAdmin())
	handlers.NewAdminHandler(svc.Comment, svc.Post, svc.Notification, svc.Counter, svc.Stats).RegisterAdminRoutes(admin)

	deps.Logger.Info("All routes configured.")
	return nil
}
