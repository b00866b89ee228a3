package product

import (
	"fmt"

	"mercado-be/internal/apperr"
)

var (
	// -- Lookup --
	ErrProductNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)

	// -- Validation & Input --
	ErrNegativePrice      = fmt.Errorf("%w: price cannot be negative", apperr.ErrValidation)
	ErrDiscountOutOfRange = fmt.Errorf("%w: discount must be between 0 and 100", apperr.ErrValidation)
	ErrNegativeStock      = fmt.Errorf("%w: stock cannot be negative", apperr.ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: name cannot be empty", apperr.ErrValidation)
	ErrMarketRequired     = fmt.Errorf("%w: market id is required", apperr.ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be greater than zero", apperr.ErrValidation)
	ErrNoFieldsToUpdate   = fmt.Errorf("%w: no fields to update", apperr.ErrValidation)

	// -- Resource State --
	ErrDuplicateProduct = fmt.Errorf("%w: product already exists", apperr.ErrConflict)
	ErrStockConflict    = fmt.Errorf("%w: stock changed concurrently", apperr.ErrConflict)
)
