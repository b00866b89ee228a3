package cart

import (
	"fmt"

	"mercado-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = fmt.Errorf("%w: cart quantity must be greater than zero", apperr.ErrValidation)
	ErrMarketNotSelected = fmt.Errorf("%w: no market selected", apperr.ErrValidation)
	ErrMarketMismatch    = fmt.Errorf("%w: product belongs to another market", apperr.ErrValidation)

	// -- Resource State --
	ErrInsufficientStock = fmt.Errorf("cart quantity exceeds available stock: %w", apperr.ErrInsufficientStock)
	ErrCartItemNotFound  = fmt.Errorf("cart item %w", apperr.ErrNotFound)
	ErrCartEmpty         = fmt.Errorf("%w: cart is empty", apperr.ErrInvalidState)
)
