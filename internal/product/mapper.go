package product

import "mercado-be/internal/pricing"

// WithFinalPrice attaches the discounted unit price to p.
func WithFinalPrice(p Product) ProductWithFinalPrice {
	return ProductWithFinalPrice{
		Product:    p,
		FinalPrice: pricing.FinalPrice(p.Price, p.Discount),
	}
}

func WithFinalPrices(products []Product) []ProductWithFinalPrice {
	out := make([]ProductWithFinalPrice, 0, len(products))
	for _, p := range products {
		out = append(out, WithFinalPrice(p))
	}
	return out
}
