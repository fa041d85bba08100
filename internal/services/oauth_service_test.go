package services_test

import (
	"testing"

	"scm/internal/models"
	"scm/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

func newOAuthFixture(t *testing.T) (*MockUserRepository, *services.OAuthService) {
	t.Helper()
	mockRepo := new(MockUserRepository)
	oauthService := services.NewOAuthService(
		mockRepo,
		&oauth2.Config{ClientID: "google-client"},
		&oauth2.Config{ClientID: "github-client"},
		"state-secret",
	)
	return mockRepo, oauthService
}

func TestParseProvider(t *testing.T) {
	provider, err := services.ParseProvider("google")
	assert.NoError(t, err)
	assert.Equal(t, models.ProviderGoogle, provider)

	provider, err = services.ParseProvider("github")
	assert.NoError(t, err)
	assert.Equal(t, models.ProviderGithub, provider)

	_, err = services.ParseProvider("facebook")
	assert.ErrorIs(t, err, services.ErrUnsupportedProvider)
}

func TestUserFromAttributes_Google(t *testing.T) {
	attrs := map[string]interface{}{
		"email":   "ann@gmail.com",
		"name":    "Ann",
		"picture": "https://lh3.googleusercontent.com/ann.png",
		"sub":     "108123456789",
	}

	user, err := services.UserFromAttributes(models.ProviderGoogle, attrs)

	assert.NoError(t, err)
	assert.Equal(t, "ann@gmail.com", user.Email)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/ann.png", user.ProfilePic)
	assert.Equal(t, "108123456789", user.ProviderUserID)
	assert.Equal(t, models.ProviderGoogle, user.Provider)
	assert.True(t, user.Enabled)
	assert.True(t, user.EmailVerified)
	assert.NotEmpty(t, user.ID)
}

func TestUserFromAttributes_Github(t *testing.T) {
	attrs := map[string]interface{}{
		"email":      "ann@users.example.com",
		"login":      "annhub",
		"avatar_url": "https://avatars.githubusercontent.com/u/42",
		"id":         float64(42),
	}

	user, err := services.UserFromAttributes(models.ProviderGithub, attrs)

	assert.NoError(t, err)
	assert.Equal(t, "ann@users.example.com", user.Email)
	assert.Equal(t, "annhub", user.Name)
	assert.Equal(t, "42", user.ProviderUserID)
	assert.Equal(t, models.ProviderGithub, user.Provider)
}

func TestUserFromAttributes_GithubWithoutEmail(t *testing.T) {
	// GitHub returns a null email for accounts that keep it private; the
	// login is used to synthesize a stable address instead.
	attrs := map[string]interface{}{
		"login":      "annhub",
		"avatar_url": "https://avatars.githubusercontent.com/u/42",
		"id":         float64(42),
	}

	user, err := services.UserFromAttributes(models.ProviderGithub, attrs)

	assert.NoError(t, err)
	assert.Equal(t, "annhub@gmail.com", user.Email)
}

func TestUserFromAttributes_Linkedin(t *testing.T) {
	_, err := services.UserFromAttributes(models.ProviderLinkedin, map[string]interface{}{
		"email": "ann@x.com",
	})
	assert.ErrorIs(t, err, services.ErrUnsupportedProvider)
}

func TestOAuthService_ResolveUser_NewAccount(t *testing.T) {
	mockRepo, oauthService := newOAuthFixture(t)

	incoming := &models.User{ID: "user-1", Email: "ann@gmail.com", Provider: models.ProviderGoogle}
	mockRepo.On("GetByEmail", "ann@gmail.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", incoming).Return(nil).Once()

	resolved, err := oauthService.ResolveUser(incoming)

	assert.NoError(t, err)
	assert.Equal(t, incoming, resolved)
	mockRepo.AssertExpectations(t)
}

func TestOAuthService_ResolveUser_ExistingAccountUntouched(t *testing.T) {
	mockRepo, oauthService := newOAuthFixture(t)

	existing := &models.User{
		ID:       "user-1",
		Email:    "ann@gmail.com",
		Name:     "Ann Original",
		Provider: models.ProviderSelf,
	}
	incoming := &models.User{
		ID:       "user-2",
		Email:    "ann@gmail.com",
		Name:     "Ann From Google",
		Provider: models.ProviderGoogle,
	}
	mockRepo.On("GetByEmail", "ann@gmail.com").Return(existing, nil).Once()

	resolved, err := oauthService.ResolveUser(incoming)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", resolved.ID)
	assert.Equal(t, "Ann Original", resolved.Name)
	assert.Equal(t, models.ProviderSelf, resolved.Provider)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestOAuthService_StateRoundTrip(t *testing.T) {
	_, oauthService := newOAuthFixture(t)

	state, err := oauthService.SignState(models.ProviderGoogle)
	assert.NoError(t, err)
	assert.NotEmpty(t, state)

	assert.NoError(t, oauthService.VerifyState(state, models.ProviderGoogle))
}

func TestOAuthService_VerifyState_WrongProvider(t *testing.T) {
	_, oauthService := newOAuthFixture(t)

	state, err := oauthService.SignState(models.ProviderGoogle)
	assert.NoError(t, err)

	assert.Error(t, oauthService.VerifyState(state, models.ProviderGithub))
}

func TestOAuthService_VerifyState_Tampered(t *testing.T) {
	_, oauthService := newOAuthFixture(t)

	assert.Error(t, oauthService.VerifyState("not-a-signed-state", models.ProviderGoogle))

	state, err := oauthService.SignState(models.ProviderGoogle)
	assert.NoError(t, err)
	assert.Error(t, oauthService.VerifyState(state+"x", models.ProviderGoogle))
}

func TestOAuthService_LoginURL(t *testing.T) {
	_, oauthService := newOAuthFixture(t)

	url, err := oauthService.LoginURL("google")
	assert.NoError(t, err)
	assert.Contains(t, url, "client_id=google-client")
	assert.Contains(t, url, "state=")

	_, err = oauthService.LoginURL("linkedin")
	assert.ErrorIs(t, err, services.ErrUnsupportedProvider)
}
