package category

import (
	"fmt"

	"mercado-be/internal/apperr"
)

const minQueryLength = 2

var (
	// -- Validation & Input --
	ErrMarketRequired = fmt.Errorf("%w: market id is required", apperr.ErrValidation)
	ErrQueryTooShort  = fmt.Errorf("%w: search query needs at least %d characters", apperr.ErrValidation, minQueryLength)
)
