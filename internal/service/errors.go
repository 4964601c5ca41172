package service

import (
	"errors"
	"fmt"

	"cat-exhibition/internal/auth"
	"cat-exhibition/internal/repository"
)

var (
	// ErrValidation marks malformed or out-of-range input. Detail is wrapped around it.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrForbidden is returned when the actor does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyVoted is returned for a second vote by the same user for the same cat.
	ErrAlreadyVoted = errors.New("already voted")
	// ErrStorageDisabled is returned by photo operations when no object storage is configured.
	ErrStorageDisabled = errors.New("photo storage is not configured")

	ErrNotFound     = repository.ErrNotFound
	ErrInvalidToken = auth.ErrInvalidToken
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
