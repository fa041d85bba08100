package handlers

import (
	"errors"

	"scm/internal/repositories"
	"scm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ApiHandler serves the JSON API.
type ApiHandler struct {
	contactService *services.ContactService
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(contactService *services.ContactService) *ApiHandler {
	return &ApiHandler{
		contactService: contactService,
	}
}

// RegisterRoutes registers the API routes with the Fiber app. The contact
// lookup is intentionally left outside the authenticated group; see
// DESIGN.md on the access-control question.
func (h *ApiHandler) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api")
	api.Get("/contacts/:contactId", h.HandleGetContact)
}

// HandleGetContact returns one contact as JSON.
func (h *ApiHandler) HandleGetContact(c *fiber.Ctx) error {
	contact, err := h.contactService.GetByID(c.Params("contactId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load contact",
		})
	}
	return c.JSON(contact)
}
