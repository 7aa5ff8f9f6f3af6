// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyTaken is returned when attempting to create a user with a username that already exists.
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when a password fails the strength policy.
	ErrWeakPassword = errors.New("password must be at least 6 characters with upper case, lower case and a digit")

	// ErrInvalidUsername is returned when a username is outside the 3-20 character bounds.
	ErrInvalidUsername = errors.New("username must be between 3 and 20 characters")
)
