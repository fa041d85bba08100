package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"scm/internal/forms"
	"scm/internal/models"
	"scm/internal/repositories"

	"github.com/google/uuid"
)

// ContactService handles business logic for the address book.
type ContactService struct {
	contactRepo  repositories.ContactRepository
	userService  *UserService
	imageService ImageService
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo repositories.ContactRepository, userService *UserService, imageService ImageService) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		userService:  userService,
		imageService: imageService,
	}
}

// CreateFromForm resolves the owning user by email, maps the form onto a new
// contact, uploads the attached image when one is present, and persists the
// contact.
func (s *ContactService) CreateFromForm(ctx context.Context, form *forms.ContactForm, ownerEmail string) (*models.Contact, error) {
	user := s.userService.GetByEmail(ownerEmail)
	if user == nil {
		return nil, fmt.Errorf("owner with email %s: %w", ownerEmail, repositories.ErrNotFound)
	}

	contact := &models.Contact{
		ID:           uuid.New().String(),
		Name:         form.Name,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		Description:  form.Description,
		Favorite:     form.Favorite,
		WebsiteLink:  form.WebsiteLink,
		LinkedInLink: form.LinkedInLink,
		UserID:       user.ID,
	}

	if form.ContactImage != nil {
		filename := uuid.New().String()
		fileURL, err := s.imageService.UploadImage(ctx, form.ContactImage, filename)
		if err != nil {
			return nil, err
		}
		contact.Picture = fileURL
		contact.CloudinaryImagePublicID = filename
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateFromForm loads an existing contact, overwrites its fields from the
// form, replaces the image when a new one is attached, and persists it. The
// owner never changes.
func (s *ContactService) UpdateFromForm(ctx context.Context, contactID string, form *forms.ContactForm) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return nil, err
	}

	contact.Name = form.Name
	contact.Email = form.Email
	contact.PhoneNumber = form.PhoneNumber
	contact.Address = form.Address
	contact.Description = form.Description
	contact.Favorite = form.Favorite
	contact.WebsiteLink = form.WebsiteLink
	contact.LinkedInLink = form.LinkedInLink

	if form.ContactImage != nil {
		log.Printf("replacing image for contact %s", contactID)
		filename := uuid.New().String()
		imageURL, err := s.imageService.UploadImage(ctx, form.ContactImage, filename)
		if err != nil {
			return nil, err
		}
		contact.CloudinaryImagePublicID = filename
		contact.Picture = imageURL
	}

	if err := s.contactRepo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetByID retrieves a contact by its ID.
func (s *ContactService) GetByID(id string) (*models.Contact, error) {
	return s.contactRepo.GetByID(id)
}

// Delete removes a contact by its ID.
func (s *ContactService) Delete(id string) error {
	if _, err := s.contactRepo.GetByID(id); err != nil {
		return err
	}
	return s.contactRepo.Delete(id)
}

// GetAllContacts retrieves every contact in the store.
func (s *ContactService) GetAllContacts() ([]models.Contact, error) {
	return s.contactRepo.GetAll()
}

// GetByUserID retrieves every contact owned by the given user.
func (s *ContactService) GetByUserID(userID string) ([]models.Contact, error) {
	return s.contactRepo.GetByUserID(userID)
}

// PageByUser returns one page of the user's contacts.
func (s *ContactService) PageByUser(user *models.User, req repositories.PageRequest) (*models.Page[models.Contact], error) {
	return s.contactRepo.FindByUser(user, req)
}

// Search dispatches a keyword search over one of the searchable contact
// fields. An unknown field yields an empty page.
func (s *ContactService) Search(field, keyword string, user *models.User, req repositories.PageRequest) (*models.Page[models.Contact], error) {
	switch strings.ToLower(field) {
	case "name":
		return s.contactRepo.FindByUserAndNameContaining(user, keyword, req)
	case "email":
		return s.contactRepo.FindByUserAndEmailContaining(user, keyword, req)
	case "phone":
		return s.contactRepo.FindByUserAndPhoneNumberContaining(user, keyword, req)
	default:
		log.Printf("contact search with unknown field %q", field)
		return models.EmptyPage[models.Contact](req.Page, req.Size), nil
	}
}

// PrepareForm loads a contact and converts it into the editable form shown
// by the update view.
func (s *ContactService) PrepareForm(contactID string) (*forms.ContactForm, error) {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return nil, err
	}

	return &forms.ContactForm{
		Name:         contact.Name,
		Email:        contact.Email,
		PhoneNumber:  contact.PhoneNumber,
		Address:      contact.Address,
		Description:  contact.Description,
		Favorite:     contact.Favorite,
		WebsiteLink:  contact.WebsiteLink,
		LinkedInLink: contact.LinkedInLink,
		Picture:      contact.Picture,
	}, nil
}
