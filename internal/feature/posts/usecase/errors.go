// Package usecase implements the business logic for the posts feature.
package usecase

import "errors"

var (
	// ErrPostNotFound is returned when no post exists with the requested ID.
	ErrPostNotFound = errors.New("post not found")

	// ErrValidation is returned when input fails a field-level check. Wrapped
	// errors carry the specific detail for the caller.
	ErrValidation = errors.New("invalid post data")
)
