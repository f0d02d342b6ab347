package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("word_ids", "must not be empty", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: word_ids must not be empty", err.Error())

	wrapped := fmt.Errorf("complete learn: %w", NewValidationError("word_id", "malformed", ErrInvalidID))
	assert.True(t, IsValidationError(wrapped))
	assert.ErrorIs(t, wrapped, ErrInvalidID)
	assert.False(t, IsValidationError(errors.New("boom")))
}

func TestNotFoundAndInvariantErrors(t *testing.T) {
	t.Parallel()

	nf := NewNotFoundError("word", "abc")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, "word abc not found", nf.Error())

	inv := NewStateInvariantError("answer", PoolR2, true)
	assert.ErrorIs(t, inv, ErrStateInvariant)
	assert.Contains(t, inv.Error(), `"R2"`)
}
