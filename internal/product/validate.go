package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

func validateDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(maxDiscount) {
		return ErrDiscountOutOfRange
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func validateUpdate(in UpdateProductInput) error {
	if in.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ErrEmptyName
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return err
		}
	}
	if in.Discount != nil {
		if err := validateDiscount(*in.Discount); err != nil {
			return err
		}
	}
	if in.Stock != nil {
		if err := validateStock(*in.Stock); err != nil {
			return err
		}
	}
	return nil
}
