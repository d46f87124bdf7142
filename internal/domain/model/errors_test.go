package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		sentinel   error
		reason     Reason
		message    string
		notMatches []error
	}{
		{
			name:       "invalid input",
			err:        InvalidInput("Name cannot be %s", "blank"),
			sentinel:   ErrInvalidInput,
			reason:     ReasonInvalidInput,
			message:    "Name cannot be blank",
			notMatches: []error{ErrNotFound, ErrInsufficientQuantity},
		},
		{
			name:       "not found",
			err:        NotFound("Recipe %q not found", "Soup"),
			sentinel:   ErrNotFound,
			reason:     ReasonNotFound,
			message:    `Recipe "Soup" not found`,
			notMatches: []error{ErrInvalidInput, ErrInsufficientQuantity},
		},
		{
			name:       "insufficient quantity",
			err:        InsufficientQuantity("Insufficient quantity available for %s", "Rice"),
			sentinel:   ErrInsufficientQuantity,
			reason:     ReasonInsufficientQuantity,
			message:    "Insufficient quantity available for Rice",
			notMatches: []error{ErrInvalidInput, ErrNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.reason, ReasonOf(tt.err))
			for _, other := range tt.notMatches {
				assert.False(t, errors.Is(tt.err, other))
			}

			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.reason, ReasonOf(wrapped))
		})
	}
}

func TestReasonOf_NonDomainError(t *testing.T) {
	assert.Equal(t, Reason(""), ReasonOf(errors.New("boom")))
	assert.Equal(t, Reason(""), ReasonOf(nil))
}

func TestDomainError_EmptyMessage(t *testing.T) {
	assert.Equal(t, "not_found", ErrNotFound.Error())
}
