/* apperror_test.go
 * Contains unit tests for apperror.go
 */

package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("game", "401"), ErrNotFound, true},
		{"ValidationFailed wraps ErrValidation", ValidationFailed("team", "bad team"), ErrValidation, true},
		{"Conflict wraps ErrConflict", Conflict("user", "abc"), ErrConflict, true},
		{"Locked wraps ErrLocked", Locked("game has started"), ErrLocked, true},
		{"NotFound does not match ErrValidation", NotFound("game", "401"), ErrValidation, false},
		{"wrapped twice still matches", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", Locked("x"))), ErrLocked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("game", "401547378")
	assert.Equal(t, "game not found with id 401547378", err.Error())
}

func TestValidationFailed_Field(t *testing.T) {
	err := ValidationFailed("first_name", "first name is required")
	assert.Equal(t, "first_name", err.Field)
	assert.Equal(t, "first name is required", err.Error())
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("submitting pick: %w", Locked("picks are locked for KC @ BUF"))
	assert.Equal(t, "picks are locked for KC @ BUF", UserMessage(wrapped, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
}
