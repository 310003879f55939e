package main

import (
	"context"
	"log"
	"os"

	"github.com/anonto42/blogs/backend/internal/mailer"
	"github.com/anonto42/blogs/backend/internal/middleware"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/anonto42/blogs/backend/internal/router"
	"github.com/anonto42/blogs/backend/pkg/config"
	"github.com/anonto42/blogs/backend/pkg/firebase"
	"github.com/anonto42/blogs/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := repositories.Migrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	var m mailer.Mailer = mailer.NewConsoleMailer(os.Stdout)
	if db.Mongo != nil {
		m = mailer.NewMongoLogMailer(m, db.Mongo.Database(cfg.MongoDatabase))
	}

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	var verifier middleware.TokenVerifier
	switch cfg.AuthProvider {
	case "firebase":
		authClient, err := firebase.NewAuthClient(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		verifier = middleware.NewFirebaseVerifier(authClient, userRepo)
	case "jwt":
		verifier = middleware.NewJWTVerifier(cfg.JWTSecret, userRepo)
	default:
		log.Fatalf("Unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e)
	router.SetupRoutes(e, router.Dependencies{
		DB:        db.Postgres,
		Mailer:    m,
		Verifier:  verifier,
		FromEmail: cfg.DefaultFromEmail,
		SiteURL:   cfg.SiteURL,
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
