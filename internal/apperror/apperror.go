package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrUpstream   = errors.New("upstream unavailable")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError carrying a caller-supplied message.
// HTTP handlers map this to 404 Not Found.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// IssueNotFound is the NotFound used when a single issue lookup misses.
func IssueNotFound(repository, number string) *AppError {
	return NotFound(fmt.Sprintf("issue #%s not found in repository %s", number, repository))
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Upstream reports that GitHub could not be reached or answered with
// something unusable. The cause is kept in the chain so callers can
// still inspect it with errors.As.
// HTTP handlers map this to 502 Bad Gateway.
func Upstream(message string, cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUpstream, cause),
		Message: message,
	}
}
