package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing id or login code (404).
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials signals a failed admin password check (401).
	// Whether the username or the password was wrong is deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken signals a missing, malformed, or expired session token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden signals a valid token whose role may not call the endpoint.
	ErrForbidden = errors.New("forbidden")
)

// NewNotFoundError tags a missing entity with ErrNotFound.
func NewNotFoundError(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
