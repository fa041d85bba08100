package handlers

import (
	"scm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the account pages.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// RegisterRoutes registers the account routes with the authenticated group.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
	router.Get("/profile", h.HandleProfile)
}

func (h *UserHandler) HandleDashboard(c *fiber.Ctx) error {
	return c.Render("user/dashboard", middleware.ViewData(c, nil))
}

func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	return c.Render("user/profile", middleware.ViewData(c, nil))
}
