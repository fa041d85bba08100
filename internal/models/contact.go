package models

import "gorm.io/gorm"

// Contact is a single address-book entry. Every contact belongs to exactly
// one user; the owner is set at creation and never changes afterwards.
type Contact struct {
	ID                       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                     string `json:"name" gorm:"type:varchar(100)"`
	Email                    string `json:"email" gorm:"type:varchar(255)"`
	PhoneNumber              string `json:"phoneNumber" gorm:"type:varchar(20)"`
	Address                  string `json:"address" gorm:"type:varchar(500)"`
	Description              string `json:"description" gorm:"type:varchar(1000)"`
	Favorite                 bool   `json:"favorite"`
	Picture                  string `json:"picture" gorm:"type:varchar(512)"`
	CloudinaryImagePublicID  string `json:"cloudinaryImagePublicId" gorm:"type:varchar(100)"`
	WebsiteLink              string `json:"websiteLink" gorm:"type:varchar(512)"`
	LinkedInLink             string `json:"linkedInLink" gorm:"type:varchar(512)"`
	UserID                   string `json:"userId" gorm:"index;type:varchar(36)"`
	gorm.Model               `json:"-"`
}
