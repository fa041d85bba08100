package models

import "gorm.io/gorm"

// Provider identifies the authentication source of a user account.
type Provider string

const (
	ProviderSelf     Provider = "SELF"
	ProviderGoogle   Provider = "GOOGLE"
	ProviderGithub   Provider = "GITHUB"
	ProviderLinkedin Provider = "LINKEDIN"
)

// RoleUser is the default role assigned to every account.
const RoleUser = "ROLE_USER"

// DefaultProfilePic is assigned to accounts registered through the form.
const DefaultProfilePic = "https://png.pngtree.com/element_our/20200610/ourmid/pngtree-character-default-avatar-image_2237203.jpg"

// User represents an account of the contact manager. Accounts created through
// the registration form start disabled until the email verification token is
// confirmed; accounts created by an OAuth2 login start enabled and verified
// and carry a placeholder password.
type User struct {
	ID             string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string   `json:"name" gorm:"type:varchar(100)"`
	Email          string   `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password       string   `json:"-" gorm:"type:varchar(255)"` // Never serialized
	About          string   `json:"about" gorm:"type:varchar(1000)"`
	PhoneNumber    string   `json:"phoneNumber" gorm:"type:varchar(20)"`
	ProfilePic     string   `json:"profilePic" gorm:"type:varchar(512)"`
	Enabled        bool     `json:"enabled"`
	EmailVerified  bool     `json:"emailVerified"`
	PhoneVerified  bool     `json:"phoneVerified"`
	Roles          []string `json:"roles" gorm:"serializer:json"`
	Provider       Provider `json:"provider" gorm:"type:varchar(20);default:SELF"`
	ProviderUserID string   `json:"providerUserId" gorm:"type:varchar(255)"`
	EmailToken     string   `json:"-" gorm:"index;type:varchar(36)"`
	gorm.Model     `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
