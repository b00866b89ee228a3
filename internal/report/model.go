package report

import "github.com/shopspring/decimal"

// MarketReport summarises the orders of one market. Revenue, items sold and
// product sales count CONFIRMED orders only.
type MarketReport struct {
	MarketID          string          `json:"market_id"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	ConfirmedOrders   int             `json:"confirmed_orders"`
	PendingOrders     int             `json:"pending_orders"`
	CancelledOrders   int             `json:"cancelled_orders"`
	TotalItemsSold    int             `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ProductSales      []ProductSales  `json:"product_sales"`
}

type ProductSales struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
