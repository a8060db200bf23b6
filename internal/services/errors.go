package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when a login does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when registration hits a taken name.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidEmployee is returned when an HR activity names a user that
	// does not exist.
	ErrInvalidEmployee = errors.New("employee does not exist")
	// ErrReferenceNotFound is returned when a foreign key does not resolve.
	ErrReferenceNotFound = errors.New("referenced record does not exist")
	// ErrInvalidTransition is returned when a status change is attempted on
	// a record that has already left the pending state.
	ErrInvalidTransition = errors.New("status can only be changed while pending")
)

// ValidationError reports a request that is well formed but not acceptable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
