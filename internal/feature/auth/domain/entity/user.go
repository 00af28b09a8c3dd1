// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account, either password-based or
// provisioned through an OAuth provider.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username is the display name chosen at registration or derived
	// from the OAuth profile.
	Username string `gorm:"size:255"`

	// Password is the bcrypt hash of the user's password. It is nil for
	// OAuth-provisioned accounts, which have no password.
	Password *string `gorm:"size:255"`

	// Provider is the OAuth provider tag ("google", "twitter", ...).
	// It is nil for password-based accounts.
	Provider *string `gorm:"size:64"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
