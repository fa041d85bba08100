package services

import (
	"errors"
	"fmt"
	"log"

	"scm/internal/forms"
	"scm/internal/models"
	"scm/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user accounts.
type UserService struct {
	userRepo     repositories.UserRepository
	emailService EmailService
	baseURL      string
}

// NewUserService creates a new UserService. baseURL is the externally
// reachable address embedded in verification links.
func NewUserService(userRepo repositories.UserRepository, emailService EmailService, baseURL string) *UserService {
	return &UserService{
		userRepo:     userRepo,
		emailService: emailService,
		baseURL:      baseURL,
	}
}

// VerificationLink renders the email-verification URL for a token.
func (s *UserService) VerificationLink(token string) string {
	return s.baseURL + "/auth/verify-email?token=" + token
}

// RegisterUser registers a new account from the registration form. The
// account starts disabled, holds a fresh verification token, and a
// verification email is dispatched out-of-band. Returns ErrEmailTaken when
// the email already belongs to an account.
func (s *UserService) RegisterUser(form *forms.UserForm) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(form.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s': %w", form.Email, ErrEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Name:        form.Name,
		Email:       form.Email,
		Password:    string(hashedPassword),
		About:       form.About,
		PhoneNumber: form.PhoneNumber,
		ProfilePic:  models.DefaultProfilePic,
		Enabled:     false,
		Roles:       []string{models.RoleUser},
		Provider:    models.ProviderSelf,
		EmailToken:  uuid.New().String(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	link := s.VerificationLink(user.EmailToken)
	if err := s.emailService.SendVerificationEmail(user.Email, link); err != nil {
		// Dispatch failure must not undo the registration; the user can ask
		// for the mail again once resend exists.
		log.Printf("Warning: failed to dispatch verification email for %s: %v", user.Email, err)
	}
	return user, nil
}

// UpdateUser overwrites every mutable field of an existing account.
func (s *UserService) UpdateUser(user *models.User) (*models.User, error) {
	oldUser, err := s.userRepo.GetByID(user.ID)
	if err != nil {
		return nil, err
	}

	oldUser.Name = user.Name
	oldUser.Email = user.Email
	oldUser.Password = user.Password
	oldUser.About = user.About
	oldUser.PhoneNumber = user.PhoneNumber
	oldUser.ProfilePic = user.ProfilePic
	oldUser.Enabled = user.Enabled
	oldUser.EmailVerified = user.EmailVerified
	oldUser.PhoneVerified = user.PhoneVerified
	oldUser.Provider = user.Provider
	oldUser.ProviderUserID = user.ProviderUserID

	if err := s.userRepo.Update(oldUser); err != nil {
		return nil, err
	}
	return oldUser, nil
}

// DeleteUser removes an account by id.
func (s *UserService) DeleteUser(id string) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// ExistsByID reports whether an account with the given id exists.
func (s *UserService) ExistsByID(id string) bool {
	user, err := s.userRepo.GetByID(id)
	return err == nil && user != nil
}

// ExistsByEmail reports whether an account with the given email exists.
func (s *UserService) ExistsByEmail(email string) bool {
	user, err := s.userRepo.GetByEmail(email)
	return err == nil && user != nil
}

// GetByEmail retrieves an account by email. A missing account is reported as
// a nil user without an error, matching how callers branch on it.
func (s *UserService) GetByEmail(email string) *models.User {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("failed to load user by email %s: %v", email, err)
		}
		return nil
	}
	return user
}

// GetByID retrieves an account by id.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAllUsers retrieves all accounts.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}
