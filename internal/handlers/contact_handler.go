package handlers

import (
	"log"

	"scm/internal/forms"
	"scm/internal/middleware"
	"scm/internal/models"
	"scm/internal/repositories"
	"scm/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// ContactHandler serves the address-book pages under /user/contacts.
type ContactHandler struct {
	contactService *services.ContactService
	userService    *services.UserService
	store          *session.Store
	validate       *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService, userService *services.UserService, store *session.Store) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		userService:    userService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the contact routes with the authenticated group.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contacts := router.Group("/contacts")
	contacts.Get("/", h.HandleList)
	contacts.Get("/add", h.HandleAddView)
	contacts.Post("/add", h.HandleAdd)
	contacts.Get("/search", h.HandleSearch)
	contacts.Get("/delete/:contactId", h.HandleDelete)
	contacts.Get("/view/:contactId", h.HandleUpdateView)
	contacts.Post("/update/:contactId", h.HandleUpdate)
}

// loggedInUser resolves the owner of the current session. The auth guard ran
// before this, so a missing user means the account vanished mid-session.
func (h *ContactHandler) loggedInUser(c *fiber.Ctx) (*models.User, error) {
	if user := middleware.LoggedInUser(c); user != nil {
		return user, nil
	}
	email := middleware.SessionEmail(c, h.store)
	if user := h.userService.GetByEmail(email); user != nil {
		return user, nil
	}
	return nil, fiber.NewError(fiber.StatusUnauthorized, "no authenticated user")
}

// pageRequest reads the pagination and sorting query parameters, applying
// the list defaults.
func pageRequest(c *fiber.Ctx) repositories.PageRequest {
	return repositories.PageRequest{
		Page:      c.QueryInt("page", 0),
		Size:      c.QueryInt("size", DefaultPageSize),
		SortBy:    c.Query("sortBy", "name"),
		Direction: c.Query("direction", "asc"),
	}
}

// HandleAddView shows an empty add-contact form. New contacts default to
// favorite, matching the form's pre-checked box.
func (h *ContactHandler) HandleAddView(c *fiber.Ctx) error {
	return c.Render("user/add_contact", middleware.ViewData(c, fiber.Map{
		"contactForm": forms.ContactForm{Favorite: true},
	}))
}

// HandleAdd processes the add-contact form, including the optional image.
func (h *ContactHandler) HandleAdd(c *fiber.Ctx) error {
	var form forms.ContactForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing contact form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("user/add_contact", middleware.ViewData(c, fiber.Map{
			"contactForm": form,
		}))
	}
	if image, err := c.FormFile("contactImage"); err == nil {
		form.ContactImage = image
	}

	if err := h.validate.Struct(form); err != nil {
		middleware.Flash(c, h.store, models.Message{
			Content: "Please correct the following errors",
			Type:    models.MessageRed,
		})
		return c.Render("user/add_contact", middleware.ViewData(c, fiber.Map{
			"contactForm": form,
			"fieldErrors": formErrors(err),
		}))
	}

	email := middleware.SessionEmail(c, h.store)
	if _, err := h.contactService.CreateFromForm(c.Context(), &form, email); err != nil {
		log.Printf("Error saving contact: %v", err)
		return serviceError(err)
	}

	middleware.Flash(c, h.store, models.Message{
		Content: "You have successfully added a new contact",
		Type:    models.MessageGreen,
	})
	return c.Redirect("/user/contacts/add")
}

// HandleList shows one page of the user's contacts.
func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	user, err := h.loggedInUser(c)
	if err != nil {
		return err
	}

	pageContact, err := h.contactService.PageByUser(user, pageRequest(c))
	if err != nil {
		return serviceError(err)
	}

	return c.Render("user/contacts", middleware.ViewData(c, fiber.Map{
		"pageContact":       pageContact,
		"pageSize":          DefaultPageSize,
		"contactSearchForm": forms.ContactSearchForm{},
	}))
}

// HandleSearch shows one page of search results over the selected field.
func (h *ContactHandler) HandleSearch(c *fiber.Ctx) error {
	user, err := h.loggedInUser(c)
	if err != nil {
		return err
	}

	var searchForm forms.ContactSearchForm
	if err := c.QueryParser(&searchForm); err != nil {
		log.Printf("Error parsing search form: %v", err)
	}
	log.Printf("field %s keyword %s", searchForm.Field, searchForm.Value)

	pageContact, err := h.contactService.Search(searchForm.Field, searchForm.Value, user, pageRequest(c))
	if err != nil {
		return serviceError(err)
	}

	return c.Render("user/search", middleware.ViewData(c, fiber.Map{
		"contactSearchForm": searchForm,
		"pageContact":       pageContact,
		"pageSize":          DefaultPageSize,
	}))
}

// HandleDelete removes a contact and returns to the list.
func (h *ContactHandler) HandleDelete(c *fiber.Ctx) error {
	contactID := c.Params("contactId")
	if err := h.contactService.Delete(contactID); err != nil {
		return serviceError(err)
	}
	log.Printf("contactId %s deleted", contactID)

	middleware.Flash(c, h.store, models.Message{
		Content: "Contact is Deleted successfully !! ",
		Type:    models.MessageGreen,
	})
	return c.Redirect("/user/contacts")
}

// HandleUpdateView shows the update form pre-filled from the stored contact.
func (h *ContactHandler) HandleUpdateView(c *fiber.Ctx) error {
	contactID := c.Params("contactId")
	contactForm, err := h.contactService.PrepareForm(contactID)
	if err != nil {
		return serviceError(err)
	}

	return c.Render("user/update_contact_view", middleware.ViewData(c, fiber.Map{
		"contactForm": contactForm,
		"contactId":   contactID,
	}))
}

// HandleUpdate processes the update form, including an optional replacement
// image.
func (h *ContactHandler) HandleUpdate(c *fiber.Ctx) error {
	contactID := c.Params("contactId")

	var form forms.ContactForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing contact form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("user/update_contact_view", middleware.ViewData(c, fiber.Map{
			"contactForm": form,
			"contactId":   contactID,
		}))
	}
	if image, err := c.FormFile("contactImage"); err == nil {
		form.ContactImage = image
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("user/update_contact_view", middleware.ViewData(c, fiber.Map{
			"contactForm": form,
			"contactId":   contactID,
			"fieldErrors": formErrors(err),
		}))
	}

	if _, err := h.contactService.UpdateFromForm(c.Context(), contactID, &form); err != nil {
		return serviceError(err)
	}

	middleware.Flash(c, h.store, models.Message{
		Content: "Contact Updated !!",
		Type:    models.MessageGreen,
	})
	return c.Redirect("/user/contacts/view/" + contactID)
}
