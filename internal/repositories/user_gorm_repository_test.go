package repositories_test

import (
	"testing"

	"scm/internal/models"
	"scm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMUserRepository_CreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	user := &models.User{
		Name:       "Ann",
		Email:      "ann@x.com",
		Roles:      []string{models.RoleUser},
		Provider:   models.ProviderSelf,
		EmailToken: "token-123",
	}
	require.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byID.Email)
	assert.Equal(t, []string{models.RoleUser}, byID.Roles)

	byEmail, err := repo.GetByEmail("ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byToken, err := repo.GetByEmailToken("token-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byToken.ID)
}

func TestGORMUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.GetByEmail("ghost@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.GetByEmailToken("bogus")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMUserRepository_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	first := &models.User{Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, repo.Create(first))

	// The unique index on email is the last line of defense against two
	// registrations racing past the service-level existence check.
	second := &models.User{Name: "Imposter", Email: "ann@x.com"}
	assert.Error(t, repo.Create(second))
}

func TestGORMUserRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	user := &models.User{Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, repo.Create(user))

	user.Enabled = true
	user.EmailVerified = true
	require.NoError(t, repo.Update(user))

	loaded, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Enabled)
	assert.True(t, loaded.EmailVerified)

	require.NoError(t, repo.Delete(user.ID))
	_, err = repo.GetByID(user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(user.ID), repositories.ErrNotFound)
}
