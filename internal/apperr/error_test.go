package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("product p-1: %w", fmt.Errorf("%w: price cannot be negative", ErrValidation))
		assert.Equal(t, ErrValidation, Kind(err))
	})

	t.Run("Each kind", func(t *testing.T) {
		for _, k := range []error{ErrNotFound, ErrValidation, ErrInsufficientStock, ErrInvalidState, ErrConflict} {
			assert.Equal(t, k, Kind(fmt.Errorf("op: %w", k)))
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Nil(t, Kind(errors.New("boom")))
		assert.Nil(t, Kind(nil))
	})
}
