package services

import (
	"fmt"
	"log"

	"scm/internal/models"
	"scm/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential authentication and email verification.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// Authenticate checks the email/password pair posted by the login form.
// A disabled account is reported before the password check so the caller can
// show the dedicated verification reminder; every other failure collapses
// into ErrInvalidCredentials to avoid account enumeration.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrInvalidCredentials)
	}

	if !user.Enabled {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserDisabled)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrInvalidCredentials)
	}
	return user, nil
}

// VerifyEmailToken verifies the token from an email-verification link.
// On success the account is marked verified and enabled. The token is not
// invalidated afterwards, so repeating the verification with the same token
// succeeds again.
func (s *AuthService) VerifyEmailToken(token string) (bool, models.Message) {
	failure := models.Message{
		Content: "Email not verified! Token is not associated with user.",
		Type:    models.MessageRed,
	}

	user, err := s.userRepo.GetByEmailToken(token)
	if err != nil {
		log.Printf("Email not verified! No user found with the provided token: %s", token)
		return false, failure
	}

	// Lookup is by token, so a mismatch cannot happen here; the branch is
	// kept so a lookup change cannot silently verify the wrong token.
	if user.EmailToken != token {
		log.Printf("Email not verified! Token is not associated with user: %s", user.Email)
		return false, failure
	}

	user.EmailVerified = true
	user.Enabled = true
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("failed to persist email verification for %s: %v", user.Email, err)
		return false, failure
	}

	log.Printf("Email verified for user: %s", user.Email)
	return true, models.Message{
		Content: "Your email is verified. Now you can log in.",
		Type:    models.MessageGreen,
	}
}
