package cart

import "mercado-be/internal/product"

// CartItem holds the product as it was read when added; stock and price are
// checked again by the order service at checkout.
type CartItem struct {
	Product  product.ProductWithFinalPrice `json:"product"`
	Quantity int                           `json:"quantity"`
}
