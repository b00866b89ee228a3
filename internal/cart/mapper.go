package cart

import "mercado-be/internal/order"

// ToOrderInput turns cart lines into an order request, keeping cart order.
func ToOrderInput(customerID, marketID string, items []CartItem) order.CreateOrderInput {
	lines := make([]order.ItemInput, 0, len(items))
	for _, it := range items {
		lines = append(lines, order.ItemInput{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
		})
	}
	return order.CreateOrderInput{
		CustomerID: customerID,
		MarketID:   marketID,
		Items:      lines,
	}
}
