// Package apperr holds the error kinds shared by every domain package.
// Domain sentinels wrap one of these kinds so callers can branch with
// errors.Is on either the kind or the specific sentinel.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
)

// Kind returns the shared kind err belongs to, or nil when it has none.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrValidation, ErrInsufficientStock, ErrInvalidState, ErrConflict} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
