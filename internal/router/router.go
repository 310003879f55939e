package router

import (
	"log"

	"github.com/anonto42/blogs/backend/internal/handlers"
	"github.com/anonto42/blogs/backend/internal/mailer"
	"github.com/anonto42/blogs/backend/internal/middleware"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/anonto42/blogs/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are wired with
type Dependencies struct {
	DB        *gorm.DB
	Mailer    mailer.Mailer
	Verifier  middleware.TokenVerifier
	FromEmail string
	SiteURL   string
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	blogRepo := repositories.NewPostgresBlogRepository(deps.DB)
	postRepo := repositories.NewPostgresPostRepository(deps.DB)
	subscriptionRepo := repositories.NewPostgresSubscriptionRepository(deps.DB)

	postService := services.NewPostService(postRepo, subscriptionRepo, deps.Mailer, deps.FromEmail, deps.SiteURL)

	// Every API route sees the viewer when a token is present; handlers decide whether one is required.
	api := e.Group("/api/v1", middleware.Authenticate(deps.Verifier))

	handlers.NewBlogHandler(blogRepo, postRepo).RegisterBlogRoutes(api)
	handlers.NewPostHandler(blogRepo, postRepo, subscriptionRepo, postService).RegisterPostRoutes(api)
	handlers.NewFeedHandler(postRepo).RegisterFeedRoutes(api)
	handlers.NewSubscriptionHandler(blogRepo, postRepo, subscriptionRepo).RegisterSubscriptionRoutes(api)

	log.Println("All routes configured.")
}
