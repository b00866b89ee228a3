package user

import (
	"errors"
	"fmt"

	"mercado-be/internal/apperr"
)

var (
	// -- Authentication --
	ErrUserNotFound    = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrInvalidPassword = errors.New("invalid password")

	// -- Validation & Input --
	ErrEmailRequired    = fmt.Errorf("%w: email is required", apperr.ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", apperr.ErrValidation)
	ErrInvalidRole      = fmt.Errorf("%w: unknown role", apperr.ErrValidation)
	ErrAdminMarket      = fmt.Errorf("%w: admins need a market, customers must not have one", apperr.ErrValidation)

	// -- Resource State --
	ErrEmailExists   = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	ErrDuplicateUser = fmt.Errorf("%w: user id already exists", apperr.ErrConflict)
)
