package forms

import "mime/multipart"

// UserForm carries the fields of the registration form.
type UserForm struct {
	Name        string `form:"name" validate:"required,min=3,max=100"`
	Email       string `form:"email" validate:"required,email"`
	Password    string `form:"password" validate:"required,min=6"`
	About       string `form:"about" validate:"required"`
	PhoneNumber string `form:"phoneNumber" validate:"required,len=10"`
}

// ContactForm carries the fields of the add/update contact forms. The image
// is attached by the handler from the multipart request; a nil image means
// the current picture is kept.
type ContactForm struct {
	Name         string                `form:"name" validate:"required,min=3,max=100"`
	Email        string                `form:"email" validate:"required,email"`
	PhoneNumber  string                `form:"phoneNumber" validate:"required,len=10"`
	Address      string                `form:"address" validate:"required"`
	Description  string                `form:"description" validate:"omitempty,max=1000"`
	Favorite     bool                  `form:"favorite"`
	WebsiteLink  string                `form:"websiteLink" validate:"omitempty,url"`
	LinkedInLink string                `form:"linkedInLink" validate:"omitempty,url"`
	Picture      string                `form:"picture" validate:"-"`
	ContactImage *multipart.FileHeader `form:"-" validate:"-"`
}

// ContactSearchForm selects which contact field a keyword is matched against.
type ContactSearchForm struct {
	Field string `form:"field" query:"field"`
	Value string `form:"value" query:"value"`
}

// LoginForm carries the credentials posted to /authenticate.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
