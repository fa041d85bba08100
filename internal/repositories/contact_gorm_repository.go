package repositories

import (
	"errors"
	"fmt"
	"strings"

	"scm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create inserts a new contact, generating its ID server-side.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByID retrieves a single contact by its ID.
func (r *GORMContactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// GetAll retrieves all contacts.
func (r *GORMContactRepository) GetAll() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all contacts: %w", err)
	}
	return contacts, nil
}

// GetByUserID retrieves every contact owned by the given user, unpaginated.
func (r *GORMContactRepository) GetByUserID(userID string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Find(&contacts, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get contacts for user %s: %w", userID, err)
	}
	return contacts, nil
}

// FindByUser returns one page of the user's contacts.
func (r *GORMContactRepository) FindByUser(user *models.User, req PageRequest) (*models.Page[models.Contact], error) {
	query := r.db.Model(&models.Contact{}).
		Where("user_id = ?", user.ID).
		Session(&gorm.Session{})
	return r.paginate(query, req)
}

// FindByUserAndNameContaining returns one page of the user's contacts whose
// name contains the keyword, case-insensitively.
func (r *GORMContactRepository) FindByUserAndNameContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error) {
	return r.findByUserAndColumnContaining(user, "name", keyword, req)
}

// FindByUserAndEmailContaining returns one page of the user's contacts whose
// email contains the keyword, case-insensitively.
func (r *GORMContactRepository) FindByUserAndEmailContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error) {
	return r.findByUserAndColumnContaining(user, "email", keyword, req)
}

// FindByUserAndPhoneNumberContaining returns one page of the user's contacts
// whose phone number contains the keyword, case-insensitively.
func (r *GORMContactRepository) FindByUserAndPhoneNumberContaining(user *models.User, keyword string, req PageRequest) (*models.Page[models.Contact], error) {
	return r.findByUserAndColumnContaining(user, "phone_number", keyword, req)
}

func (r *GORMContactRepository) findByUserAndColumnContaining(user *models.User, column, keyword string, req PageRequest) (*models.Page[models.Contact], error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	query := r.db.Model(&models.Contact{}).
		Where("user_id = ?", user.ID).
		Where("LOWER("+column+") LIKE ?", pattern).
		Session(&gorm.Session{})
	return r.paginate(query, req)
}

// paginate runs the count and the page query for an already-filtered query.
func (r *GORMContactRepository) paginate(query *gorm.DB, req PageRequest) (*models.Page[models.Contact], error) {
	order, err := req.OrderClause()
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	err = query.Order(order).
		Offset(req.Page * req.Size).
		Limit(req.Size).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load contact page: %w", err)
	}

	return models.NewPage(contacts, req.Page, req.Size, total), nil
}

// Update overwrites an existing contact record.
func (r *GORMContactRepository) Update(contact *models.Contact) error {
	res := r.db.Save(contact) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s for update: %w", contact.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a contact by its ID.
func (r *GORMContactRepository) Delete(id string) error {
	res := r.db.Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
