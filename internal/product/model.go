package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	MarketID    string          `json:"market_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Discount    decimal.Decimal `json:"discount"` // percent, 0..100
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductWithFinalPrice is the customer-facing view of a product.
// FinalPrice is derived on read and never stored.
type ProductWithFinalPrice struct {
	Product
	FinalPrice decimal.Decimal `json:"final_price"`
}

type NewProductInput struct {
	MarketID    string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Discount    decimal.Decimal
	ImageURL    string
	Category    string
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
// ID, MarketID and CreatedAt are not updatable.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Discount    *decimal.Decimal
	ImageURL    *string
	Category    *string
}

func (in UpdateProductInput) IsEmpty() bool {
	return in.Name == nil &&
		in.Description == nil &&
		in.Price == nil &&
		in.Stock == nil &&
		in.Discount == nil &&
		in.ImageURL == nil &&
		in.Category == nil
}
