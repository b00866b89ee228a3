package order

import (
	"fmt"

	"mercado-be/internal/apperr"
)

var (
	// -- Lookup --
	ErrOrderNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)

	// -- Validation & Input --
	ErrCustomerRequired = fmt.Errorf("%w: customer id is required", apperr.ErrValidation)
	ErrMarketRequired   = fmt.Errorf("%w: market id is required", apperr.ErrValidation)
	ErrNoItems          = fmt.Errorf("%w: order has no items", apperr.ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be greater than zero", apperr.ErrValidation)
	ErrCrossMarketItem  = fmt.Errorf("%w: product does not belong to the order market", apperr.ErrValidation)

	// -- Resource State --
	ErrInvalidTransition = fmt.Errorf("%w: only pending orders can be confirmed or cancelled", apperr.ErrInvalidState)
	ErrDuplicateOrder    = fmt.Errorf("%w: order already exists", apperr.ErrConflict)
)

// InsufficientStockError reports the first line whose requested quantity
// exceeds the live stock. It matches apperr.ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
		e.ProductID, e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return apperr.ErrInsufficientStock
}
