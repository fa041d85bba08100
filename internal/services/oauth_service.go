package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"scm/internal/models"
	"scm/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Default userinfo endpoints, overridable for tests.
const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	githubUserInfoURL = "https://api.github.com/user"
)

// OAuthService drives the authorization-code login flow for the social
// providers and maps provider claims onto local user accounts.
type OAuthService struct {
	userRepo     repositories.UserRepository
	configs      map[models.Provider]*oauth2.Config
	userInfoURLs map[models.Provider]string
	stateSecret  []byte
	stateTTL     time.Duration
}

// NewOAuthService creates a new OAuthService. stateSecret signs the OAuth2
// state parameter that protects the callback against CSRF.
func NewOAuthService(userRepo repositories.UserRepository, google, github *oauth2.Config, stateSecret string) *OAuthService {
	return &OAuthService{
		userRepo: userRepo,
		configs: map[models.Provider]*oauth2.Config{
			models.ProviderGoogle: google,
			models.ProviderGithub: github,
		},
		userInfoURLs: map[models.Provider]string{
			models.ProviderGoogle: googleUserInfoURL,
			models.ProviderGithub: githubUserInfoURL,
		},
		stateSecret: []byte(stateSecret),
		stateTTL:    10 * time.Minute,
	}
}

// ParseProvider maps the registration id from the login URL onto a provider.
func ParseProvider(registrationID string) (models.Provider, error) {
	switch registrationID {
	case "google":
		return models.ProviderGoogle, nil
	case "github":
		return models.ProviderGithub, nil
	case "linkedin":
		return models.ProviderLinkedin, nil
	default:
		return "", fmt.Errorf("provider %q: %w", registrationID, ErrUnsupportedProvider)
	}
}

// UserFromAttributes builds a transient user account from the userinfo
// claims of a provider. Providers without an attribute mapping fail loudly
// instead of producing a half-filled account.
func UserFromAttributes(provider models.Provider, attrs map[string]interface{}) (*models.User, error) {
	user := &models.User{
		ID:            uuid.New().String(),
		Roles:         []string{models.RoleUser},
		EmailVerified: true,
		Enabled:       true,
		Password:      "dummy",
		Provider:      provider,
	}

	switch provider {
	case models.ProviderGoogle:
		user.Email = stringAttr(attrs, "email")
		user.ProfilePic = stringAttr(attrs, "picture")
		user.Name = stringAttr(attrs, "name")
		user.ProviderUserID = stringAttr(attrs, "sub")
		user.About = "This account is created using Google."

	case models.ProviderGithub:
		email := stringAttr(attrs, "email")
		if email == "" {
			// GitHub hides the email for many accounts; synthesize one from
			// the login so the account still has a unique identifier.
			email = stringAttr(attrs, "login") + "@gmail.com"
		}
		user.Email = email
		user.ProfilePic = stringAttr(attrs, "avatar_url")
		user.Name = stringAttr(attrs, "login")
		user.ProviderUserID = numericAttr(attrs, "id")
		user.About = "This account is created using GitHub."

	default:
		return nil, fmt.Errorf("provider %q: %w", provider, ErrUnsupportedProvider)
	}

	if user.Email == "" {
		return nil, fmt.Errorf("provider %q returned no usable email", provider)
	}
	return user, nil
}

// ResolveUser stores a first-time OAuth2 user, or keeps the existing account
// with that email untouched. Repeat logins never merge profile fields into
// an existing record.
func (s *OAuthService) ResolveUser(user *models.User) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(user.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		log.Printf("User saved: %s", user.Email)
		return user, nil
	}

	log.Printf("User already exists: %s", existing.Email)
	return existing, nil
}

// LoginURL renders the provider's authorization URL with a signed state.
func (s *OAuthService) LoginURL(registrationID string) (string, error) {
	provider, err := ParseProvider(registrationID)
	if err != nil {
		return "", err
	}
	cfg, ok := s.configs[provider]
	if !ok {
		return "", fmt.Errorf("provider %q: %w", registrationID, ErrUnsupportedProvider)
	}

	state, err := s.SignState(provider)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth2 state: %w", err)
	}
	return cfg.AuthCodeURL(state), nil
}

// HandleCallback finishes the authorization-code flow: it verifies the
// state, exchanges the code, reads the provider's userinfo, and resolves the
// local account.
func (s *OAuthService) HandleCallback(ctx context.Context, registrationID, state, code string) (*models.User, error) {
	provider, err := ParseProvider(registrationID)
	if err != nil {
		return nil, err
	}
	if err := s.VerifyState(state, provider); err != nil {
		return nil, err
	}

	cfg, ok := s.configs[provider]
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", registrationID, ErrUnsupportedProvider)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth2 code: %w", err)
	}

	attrs, err := s.fetchUserInfo(ctx, cfg, provider, token)
	if err != nil {
		return nil, err
	}

	user, err := UserFromAttributes(provider, attrs)
	if err != nil {
		return nil, err
	}
	return s.ResolveUser(user)
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, cfg *oauth2.Config, provider models.Provider, token *oauth2.Token) (map[string]interface{}, error) {
	resp, err := cfg.Client(ctx, token).Get(s.userInfoURLs[provider])
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo from %s: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("userinfo request to %s returned status %d", provider, resp.StatusCode)
	}

	var attrs map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo from %s: %w", provider, err)
	}
	return attrs, nil
}

// SignState issues the short-lived signed state for the authorization URL.
func (s *OAuthService) SignState(provider models.Provider) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"provider": string(provider),
		"nonce":    uuid.New().String(),
		"exp":      time.Now().Add(s.stateTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	return token.SignedString(s.stateSecret)
}

// VerifyState checks the signature, expiry, and provider binding of a state
// returned by the callback.
func (s *OAuthService) VerifyState(state string, provider models.Provider) error {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.stateSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid oauth2 state: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid oauth2 state")
	}
	if claims["provider"] != string(provider) {
		return fmt.Errorf("oauth2 state issued for another provider")
	}
	return nil
}

func stringAttr(attrs map[string]interface{}, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

// numericAttr renders a numeric claim (GitHub's id) as a string.
func numericAttr(attrs map[string]interface{}, key string) string {
	switch v := attrs[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
