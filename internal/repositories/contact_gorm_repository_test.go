package repositories_test

import (
	"fmt"
	"testing"

	"scm/internal/models"
	"scm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database. The DSN carries the
// test name so parallel tests never share state through the sqlite cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	repo := repositories.NewGORMUserRepository(db)
	user := &models.User{Name: "Owner", Email: email, Enabled: true}
	require.NoError(t, repo.Create(user))
	return user
}

func seedContacts(t *testing.T, db *gorm.DB, userID string, contacts []models.Contact) {
	t.Helper()
	repo := repositories.NewGORMContactRepository(db)
	for i := range contacts {
		contacts[i].UserID = userID
		require.NoError(t, repo.Create(&contacts[i]))
	}
}

func pageReq(page, size int, sortBy, direction string) repositories.PageRequest {
	return repositories.PageRequest{Page: page, Size: size, SortBy: sortBy, Direction: direction}
}

func TestGORMContactRepository_CreateAssignsID(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)
	owner := seedUser(t, db, "owner@x.com")

	contact := &models.Contact{Name: "Bob", Email: "bob@x.com", UserID: owner.ID}
	require.NoError(t, repo.Create(contact))
	assert.NotEmpty(t, contact.ID)

	loaded, err := repo.GetByID(contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", loaded.Name)
	assert.Equal(t, owner.ID, loaded.UserID)
}

func TestGORMContactRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMContactRepository_FindByUser_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")

	seedContacts(t, db, owner.ID, []models.Contact{
		{Name: "Alice", Email: "alice@x.com"},
		{Name: "Bob", Email: "bob@x.com"},
		{Name: "Carol", Email: "carol@x.com"},
		{Name: "Dave", Email: "dave@x.com"},
		{Name: "Erin", Email: "erin@x.com"},
	})
	seedContacts(t, db, other.ID, []models.Contact{
		{Name: "Zed", Email: "zed@x.com"},
	})

	page, err := repo.FindByUser(owner, pageReq(0, 2, "name", "asc"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alice", page.Items[0].Name)
	assert.Equal(t, "Bob", page.Items[1].Name)
	assert.False(t, page.HasPrevious())
	assert.True(t, page.HasNext())

	// Second page continues where the first left off.
	page, err = repo.FindByUser(owner, pageReq(1, 2, "name", "asc"))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Carol", page.Items[0].Name)
	assert.True(t, page.HasPrevious())

	// Descending order flips the first page.
	page, err = repo.FindByUser(owner, pageReq(0, 2, "name", "desc"))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Erin", page.Items[0].Name)

	// A page past the end is empty, not an error.
	page, err = repo.FindByUser(owner, pageReq(9, 2, "name", "asc"))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.TotalElements)
}

func TestGORMContactRepository_FindByUser_InvalidSortField(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)
	owner := seedUser(t, db, "owner@x.com")

	_, err := repo.FindByUser(owner, pageReq(0, 10, "password; DROP TABLE contacts", "asc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort field")
}

func TestGORMContactRepository_SearchIsCaseInsensitiveAndOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")

	seedContacts(t, db, owner.ID, []models.Contact{
		{Name: "Robert Smith", Email: "Robert.Smith@Example.COM", PhoneNumber: "5550001111"},
		{Name: "Bobby Brown", Email: "bobby@example.com", PhoneNumber: "5552223333"},
		{Name: "Carol", Email: "carol@other-domain.org", PhoneNumber: "1112223333"},
	})
	seedContacts(t, db, other.ID, []models.Contact{
		{Name: "Roberta", Email: "roberta@example.com", PhoneNumber: "5559998888"},
	})

	req := pageReq(0, 10, "name", "asc")

	page, err := repo.FindByUserAndNameContaining(owner, "ROB", req)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Robert Smith", page.Items[0].Name)

	page, err = repo.FindByUserAndNameContaining(owner, "bob", req)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	page, err = repo.FindByUserAndEmailContaining(owner, "example.com", req)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = repo.FindByUserAndPhoneNumberContaining(owner, "555", req)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	// Another user's matching contacts never leak into the result.
	page, err = repo.FindByUserAndNameContaining(other, "rob", req)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Roberta", page.Items[0].Name)
}

func TestGORMContactRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMContactRepository(db)
	owner := seedUser(t, db, "owner@x.com")

	contact := &models.Contact{Name: "Bob", Email: "bob@x.com", UserID: owner.ID}
	require.NoError(t, repo.Create(contact))

	contact.Name = "Robert"
	contact.Favorite = true
	require.NoError(t, repo.Update(contact))

	loaded, err := repo.GetByID(contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robert", loaded.Name)
	assert.True(t, loaded.Favorite)

	require.NoError(t, repo.Delete(contact.ID))
	_, err = repo.GetByID(contact.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.Delete(contact.ID), repositories.ErrNotFound)
}
