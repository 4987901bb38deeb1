/* apperror.go
 * Contains the error kinds returned by the api package. Presentation layers (bot, web) use errors.Is to map these to
 * a response, and the Message field is safe to show to a user
 */

package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrLocked     = errors.New("locked")
)

type AppError struct {
	Err     error  // kind, one of the sentinels above
	Message string // human readable message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Locked is returned when a pick is submitted for a game that has already kicked off
func Locked(message string) *AppError {
	return &AppError{
		Err:     ErrLocked,
		Message: message,
	}
}

// UserMessage returns the message of the first AppError in err's chain, or fallback if there is none
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
