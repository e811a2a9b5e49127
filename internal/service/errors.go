package service

import (
	"errors"
	"strings"

	"github.com/blog-personal-api/internal/validation"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("access to this resource is forbidden")
	ErrBadArgument         = errors.New("invalid argument")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already taken")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrDefaultRoleNotFound = errors.New("default role not found")
	ErrCommentsDisabled    = errors.New("comments are disabled for this post")
)

// ValidationError carries field level errors for a rejected request.
// It matches ErrBadArgument under errors.Is.
type ValidationError struct {
	Errors []validation.ValidationError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrBadArgument
}

// invalid wraps field errors, returning nil when there are none
func invalid(errs []validation.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// badArgument reports a single rejected field
func badArgument(field, message string) error {
	return &ValidationError{Errors: []validation.ValidationError{{Field: field, Message: message}}}
}
