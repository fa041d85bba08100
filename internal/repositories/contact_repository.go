package repositories

import (
	"fmt"
	"strings"

	"scm/internal/models"
)

// sortColumns whitelists the contact attributes a page may be ordered by.
var sortColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"phone_number": "phone_number",
	"phoneNumber":  "phone_number",
	"address":      "address",
	"favorite":     "favorite",
	"created_at":   "created_at",
}

// PageRequest describes one page of a paginated, sorted query. Page numbers
// are zero-based and a page past the end of the result set yields an empty
// page, not an error.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string // "asc" or "desc"
}

// OrderClause validates the sort field against the contact attribute
// whitelist and renders the SQL ORDER BY expression.
func (p PageRequest) OrderClause() (string, error) {
	if p.Page < 0 {
		return "", fmt.Errorf("page index must not be negative, got %d", p.Page)
	}
	if p.Size <= 0 {
		return "", fmt.Errorf("page size must be positive, got %d", p.Size)
	}
	column, ok := sortColumns[p.SortBy]
	if !ok {
		return "", fmt.Errorf("invalid sort field %q", p.SortBy)
	}
	direction := "ASC"
	if strings.EqualFold(p.Direction, "desc") {
		direction = "DESC"
	}
	return column + " " + direction, nil
}

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id string) (*models.Contact, error)
	GetAll() ([]models.Contact, error)
	GetByUserID(userID string) ([]models.Contact, error)
	FindByUser(user *models.User, req PageRequest) (*models.Page[models.Contact], error)
	FindByUserAndNameContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error)
	FindByUserAndEmailContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error)
	FindByUserAndPhoneNumberContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error)
	Update(contact *models.Contact) error
	Delete(id string) error
}
