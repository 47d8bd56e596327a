package data

import (
	"errors"

	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/onboarding"
)

var (
	// ErrUsernameTaken is returned when registering a username that already exists
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both an unknown username and a wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMissingRequiredField is returned when required input is empty
	ErrMissingRequiredField = onboarding.ErrMissingRequiredField
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated is returned when an operation needs a logged in user
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUsernameImmutable is returned when a profile update tries to rename the account
	ErrUsernameImmutable = errors.New("username cannot be changed")
	// ErrInvalidEntry is returned for entries that fail validation
	ErrInvalidEntry = model.ErrInvalidEntry
)

// Registered reports whether a registration succeeded
func Registered(err error) bool {
	return err == nil
}
