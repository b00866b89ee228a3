package category

// Category is derived from the products of one market; it is not stored.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}
