package services

import "errors"

var (
	// ErrEmailTaken reports a registration attempt with an email address
	// that already belongs to an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is the generic login failure. It deliberately
	// does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserDisabled reports a login attempt against an account that has
	// not completed email verification yet.
	ErrUserDisabled = errors.New("user is disabled")

	// ErrUnsupportedProvider reports an OAuth2 login through a provider the
	// application has no attribute mapping for.
	ErrUnsupportedProvider = errors.New("unsupported oauth2 provider")
)
