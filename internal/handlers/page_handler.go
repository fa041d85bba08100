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

// PageHandler serves the public pages and the registration flow.
type PageHandler struct {
	userService *services.UserService
	store       *session.Store
	validate    *validator.Validate
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(userService *services.UserService, store *session.Store) *PageHandler {
	return &PageHandler{
		userService: userService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/home", h.HandleHome)
	router.Get("/about", h.HandleAbout)
	router.Get("/services", h.HandleServices)
	router.Get("/contact", h.HandleContact)
	router.Get("/login", h.HandleLoginPage)
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/do-register", h.HandleRegister)
}

// HandleIndex redirects the root path to the home page.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Redirect("/home")
}

func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("index", middleware.ViewData(c, nil))
}

func (h *PageHandler) HandleAbout(c *fiber.Ctx) error {
	return c.Render("about", middleware.ViewData(c, nil))
}

func (h *PageHandler) HandleServices(c *fiber.Ctx) error {
	return c.Render("services", middleware.ViewData(c, nil))
}

func (h *PageHandler) HandleContact(c *fiber.Ctx) error {
	return c.Render("contact", middleware.ViewData(c, nil))
}

// HandleLoginPage shows the login form. The error and logout query flags come
// from the authentication redirects.
func (h *PageHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", middleware.ViewData(c, fiber.Map{
		"loginError": c.Query("error") == "true",
		"loggedOut":  c.Query("logout") == "true",
	}))
}

// HandleRegisterPage shows an empty registration form.
func (h *PageHandler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.Render("register", middleware.ViewData(c, fiber.Map{
		"userForm": forms.UserForm{},
	}))
}

// HandleRegister processes the registration form. Validation failures and a
// duplicate email re-render the form; success flashes a message and
// redirects back to the registration page.
func (h *PageHandler) HandleRegister(c *fiber.Ctx) error {
	var form forms.UserForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("register", middleware.ViewData(c, fiber.Map{
			"userForm": form,
		}))
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("register", middleware.ViewData(c, fiber.Map{
			"userForm":    form,
			"fieldErrors": formErrors(err),
		}))
	}

	if _, err := h.userService.RegisterUser(&form); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Render("register", middleware.ViewData(c, fiber.Map{
				"userForm": form,
				"fieldErrors": map[string]string{
					"Email": "This email is already registered.",
				},
			}))
		}
		log.Printf("Error registering user: %v", err)
		return serviceError(err)
	}

	middleware.Flash(c, h.store, models.Message{
		Content: "Registration Successful",
		Type:    models.MessageGreen,
	})
	return c.Redirect("/register")
}
