package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorWrapsKind(t *testing.T) {
	err := NewNotFoundError("No job: 7")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "No job: 7", err.Error())

	wrapped := fmt.Errorf("service: %w", err)
	assert.Equal(t, "No job: 7", Message(wrapped, "fallback"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "Unauthorized", Message(ErrUnauthorized, "Unauthorized"))
	assert.Equal(t, "Unauthorized", Message(ErrTokenExpired, "Unauthorized"))
	assert.True(t, errors.Is(ErrTokenExpired, ErrUnauthorized))
}

func TestValidationErrorAggregates(t *testing.T) {
	err := NewValidationError([]string{"title is required", "salary must be at least 0"})

	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "title is required; salary must be at least 0", err.Error())
	assert.Equal(t, []string{"title is required", "salary must be at least 0"}, Details(err))
	assert.Nil(t, Details(ErrBadRequest))
}
