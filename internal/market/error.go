package market

import (
	"fmt"

	"mercado-be/internal/apperr"
)

var (
	ErrMarketNotFound  = fmt.Errorf("market %w", apperr.ErrNotFound)
	ErrMarketIDMissing = fmt.Errorf("%w: market id is required", apperr.ErrValidation)
	ErrDuplicateMarket = fmt.Errorf("%w: market already exists", apperr.ErrConflict)
)
