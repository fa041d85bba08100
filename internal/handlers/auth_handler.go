package handlers

import (
	"errors"
	"log"

	"scm/internal/forms"
	"scm/internal/middleware"
	"scm/internal/models"
	"scm/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler serves form login, logout, email verification, and the OAuth2
// entry points.
type AuthHandler struct {
	authService  *services.AuthService
	oauthService *services.OAuthService
	store        *session.Store
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, oauthService *services.OAuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		store:        store,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/authenticate", h.HandleAuthenticate)
	router.Get("/do-logout", h.HandleLogout)
	router.Get("/auth/verify-email", h.HandleVerifyEmail)
	router.Get("/oauth2/:provider", h.HandleOAuthLogin)
	router.Get("/oauth2/callback/:provider", h.HandleOAuthCallback)
}

// HandleAuthenticate processes the login form. A disabled account gets the
// verification reminder; any other failure redirects with the generic error
// flag and no session message.
func (h *AuthHandler) HandleAuthenticate(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Redirect("/login?error=true")
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("login", middleware.ViewData(c, fiber.Map{
			"fieldErrors": formErrors(err),
		}))
	}

	user, err := h.authService.Authenticate(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserDisabled) {
			log.Printf("User attempted to log in while disabled: %s", form.Email)
			middleware.Flash(c, h.store, models.Message{
				Content: "User is disabled, Email with verification link is sent on your email id !!",
				Type:    models.MessageRed,
			})
			return c.Redirect("/login")
		}
		log.Printf("Authentication failed: %v", err)
		return c.Redirect("/login?error=true")
	}

	if err := middleware.Login(c, h.store, user.Email); err != nil {
		log.Printf("failed to establish session for %s: %v", user.Email, err)
		return c.Redirect("/login?error=true")
	}
	return c.Redirect("/user/profile")
}

// HandleLogout destroys the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := middleware.Logout(c, h.store); err != nil {
		log.Printf("failed to destroy session: %v", err)
	}
	return c.Redirect("/login?logout=true")
}

// HandleVerifyEmail verifies the token from the verification link.
func (h *AuthHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")

	verified, msg := h.authService.VerifyEmailToken(token)
	middleware.Flash(c, h.store, msg)

	if verified {
		return c.Render("success_page", middleware.ViewData(c, fiber.Map{
			"message": &msg,
		}))
	}
	return c.Render("error_page", middleware.ViewData(c, fiber.Map{
		"message": &msg,
	}))
}

// HandleOAuthLogin redirects to the provider's authorization page.
func (h *AuthHandler) HandleOAuthLogin(c *fiber.Ctx) error {
	url, err := h.oauthService.LoginURL(c.Params("provider"))
	if err != nil {
		log.Printf("OAuth2 login rejected: %v", err)
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.Redirect(url)
}

// HandleOAuthCallback finishes the provider flow and logs the resolved
// account in. Every success lands on the profile page, whether the account
// is new or already existed.
func (h *AuthHandler) HandleOAuthCallback(c *fiber.Ctx) error {
	if c.Query("error") != "" {
		log.Printf("OAuth2 callback returned error: %s", c.Query("error"))
		return c.Redirect("/login?error=true")
	}

	user, err := h.oauthService.HandleCallback(c.Context(), c.Params("provider"), c.Query("state"), c.Query("code"))
	if err != nil {
		log.Printf("OAuth2 callback failed: %v", err)
		return c.Redirect("/login?error=true")
	}

	if err := middleware.Login(c, h.store, user.Email); err != nil {
		log.Printf("failed to establish session for %s: %v", user.Email, err)
		return c.Redirect("/login?error=true")
	}
	return c.Redirect("/user/profile")
}
