package main

import (
	"scm/internal/handlers"
	"scm/internal/middleware"
	"scm/internal/repositories"
	"scm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
	googleoauth "golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

// NewApp wires repositories, services, and handlers into a Fiber app. The
// database, email dispatch, and image store are injected so main and tests
// can supply their own.
func NewApp(db *gorm.DB, emailService services.EmailService, imageService services.ImageService) (*fiber.App, *session.Store, error) {
	baseURL := viper.GetString("BASE_URL")

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, emailService, baseURL)
	authService := services.NewAuthService(userRepo)
	contactService := services.NewContactService(contactRepo, userService, imageService)
	oauthService := services.NewOAuthService(userRepo,
		&oauth2.Config{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  baseURL + "/oauth2/callback/google",
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     googleoauth.Endpoint,
		},
		&oauth2.Config{
			ClientID:     viper.GetString("GITHUB_CLIENT_ID"),
			ClientSecret: viper.GetString("GITHUB_CLIENT_SECRET"),
			RedirectURL:  baseURL + "/oauth2/callback/github",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		viper.GetString("STATE_SECRET"),
	)

	// --- Session store ---
	store := session.New()

	// --- Handlers ---
	pageHandler := handlers.NewPageHandler(userService, store)
	authHandler := handlers.NewAuthHandler(authService, oauthService, store)
	userHandler := handlers.NewUserHandler()
	contactHandler := handlers.NewContactHandler(contactService, userService, store)
	apiHandler := handlers.NewApiHandler(contactService)

	// --- Fiber app ---
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	app.Use(logger.New())
	app.Use(middleware.WithLoggedInUser(store, userService))

	pageHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	apiHandler.RegisterRoutes(app)

	// Only /user/** is behind the session guard; the JSON API stays open.
	userGroup := app.Group("/user", middleware.AuthRequired(store))
	userHandler.RegisterRoutes(userGroup)
	contactHandler.RegisterRoutes(userGroup)

	return app, store, nil
}
