package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mercado-be/internal/logger"
	"mercado-be/internal/market"
	"mercado-be/internal/order"
	"mercado-be/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentReports = 4

// OrderSource lists the orders of a market. order.Service satisfies it.
type OrderSource interface {
	GetOrdersByMarket(ctx context.Context, marketID string) ([]*order.Order, error)
}

type Service interface {
	GenerateMarketReport(ctx context.Context, marketID string) (*MarketReport, error)

	// GenerateReports builds one report per market concurrently and returns
	// them in the order of marketIDs. The first failure cancels the rest.
	GenerateReports(ctx context.Context, marketIDs []string) ([]*MarketReport, error)
}

type service struct {
	orders  OrderSource
	markets market.Repository
}

func NewService(orders OrderSource, markets market.Repository) Service {
	return &service{orders: orders, markets: markets}
}

func (s *service) GenerateMarketReport(ctx context.Context, marketID string) (*MarketReport, error) {
	if strings.TrimSpace(marketID) == "" {
		return nil, market.ErrMarketIDMissing
	}
	if !s.markets.Exists(ctx, marketID) {
		return nil, fmt.Errorf("report for %s: %w", marketID, market.ErrMarketNotFound)
	}

	orders, err := s.orders.GetOrdersByMarket(ctx, marketID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list market orders",
			zap.String("layer", "service"),
			zap.String("method", "GenerateMarketReport"),
			zap.String("market_id", marketID),
			zap.Error(err),
		)
		return nil, err
	}
	return Aggregate(marketID, orders), nil
}

func (s *service) GenerateReports(ctx context.Context, marketIDs []string) ([]*MarketReport, error) {
	reports := make([]*MarketReport, len(marketIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReports)
	for i, id := range marketIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.GenerateMarketReport(ctx, id)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Aggregate computes the report for orders, all of which belong to marketID.
func Aggregate(marketID string, orders []*order.Order) *MarketReport {
	r := &MarketReport{
		MarketID:          marketID,
		TotalOrders:       len(orders),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		ProductSales:      []ProductSales{},
	}

	revenue := decimal.Zero
	index := make(map[string]int)
	for _, o := range orders {
		switch o.Status {
		case order.StatusPending:
			r.PendingOrders++
			continue
		case order.StatusCancelled:
			r.CancelledOrders++
			continue
		case order.StatusConfirmed:
			r.ConfirmedOrders++
		default:
			continue
		}

		revenue = revenue.Add(o.TotalAmount)
		for _, it := range o.Items {
			r.TotalItemsSold += it.Quantity

			i, ok := index[it.ProductID]
			if !ok {
				i = len(r.ProductSales)
				index[it.ProductID] = i
				r.ProductSales = append(r.ProductSales, ProductSales{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Revenue:     decimal.Zero,
				})
			}
			r.ProductSales[i].QuantitySold += it.Quantity
			r.ProductSales[i].Revenue = r.ProductSales[i].Revenue.Add(it.Subtotal)
		}
	}

	r.TotalRevenue = pricing.Round2(revenue)
	if r.ConfirmedOrders > 0 {
		r.AverageOrderValue = pricing.Round2(revenue.Div(decimal.NewFromInt(int64(r.ConfirmedOrders))))
	}
	for i := range r.ProductSales {
		r.ProductSales[i].Revenue = pricing.Round2(r.ProductSales[i].Revenue)
	}
	sort.SliceStable(r.ProductSales, func(i, j int) bool {
		return r.ProductSales[i].QuantitySold > r.ProductSales[j].QuantitySold
	})
	return r
}
