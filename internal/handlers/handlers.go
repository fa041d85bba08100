package handlers

import (
	"errors"
	"fmt"

	"scm/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize is the contact list page size used when the request does
// not specify one.
const DefaultPageSize = 10

// formErrors flattens validator failures into per-field messages for the
// re-rendered form.
func formErrors(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}

// serviceError maps a service failure onto the HTTP error surfaced to the
// client. Missing records become 404s, everything else a 500.
func serviceError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
