// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login failure. Unknown email and
	// wrong password deliberately produce this same value so a caller cannot
	// tell which of the two failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailRequired is returned when an OAuth provider that must supply an
	// email address did not.
	ErrEmailRequired = errors.New("email cannot be empty")
)
