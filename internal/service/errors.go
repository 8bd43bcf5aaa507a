package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is intentionally distinct from
	// ErrInvalidCredentials: a deactivated holder of valid credentials
	// is told their account is disabled rather than that the password
	// is wrong.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrUnauthenticated is the single external error for every
	// bearer-token rejection, whatever the underlying reason.
	ErrUnauthenticated = errors.New("authentication required")

	ErrForbidden = errors.New("admin privileges required")

	ErrUserNotFound = errors.New("user not found")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
