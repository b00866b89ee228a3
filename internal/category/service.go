package category

import (
	"context"
	"sort"
	"strings"

	"mercado-be/internal/logger"
	"mercado-be/internal/product"

	"go.uber.org/zap"
)

// uncategorized groups products with an empty category.
const uncategorized = "Outros"

// Service browses a market's catalog by category and by text search.
type Service interface {
	GetCategories(ctx context.Context, marketID string) ([]Category, error)
	GetProducts(ctx context.Context, marketID, name string) ([]product.ProductWithFinalPrice, error)

	// Search matches query, case-insensitively, against product names and
	// categories.
	Search(ctx context.Context, marketID, query string) ([]product.ProductWithFinalPrice, error)
}

type service struct {
	products product.Repository
}

func NewService(products product.Repository) Service {
	return &service{products: products}
}

// GetCategories lists the categories in use by a market, sorted by name.
func (s *service) GetCategories(ctx context.Context, marketID string) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
		zap.String("market_id", marketID),
	)

	products, err := s.marketProducts(ctx, marketID)
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range products {
		counts[nameOf(p)]++
	}

	categories := make([]Category, 0, len(counts))
	for name, n := range counts {
		categories = append(categories, Category{Name: name, ProductCount: n})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	log.Debug("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetProducts(ctx context.Context, marketID, name string) ([]product.ProductWithFinalPrice, error) {
	products, err := s.marketProducts(ctx, marketID)
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0)
	for _, p := range products {
		if nameOf(p) == name {
			out = append(out, p)
		}
	}
	return product.WithFinalPrices(out), nil
}

func (s *service) Search(ctx context.Context, marketID, query string) ([]product.ProductWithFinalPrice, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minQueryLength {
		return nil, ErrQueryTooShort
	}

	products, err := s.marketProducts(ctx, marketID)
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}

	logger.FromCtx(ctx).Debug("search completed",
		zap.String("layer", "service"),
		zap.String("market_id", marketID),
		zap.String("query", q),
		zap.Int("matches", len(out)),
	)
	return product.WithFinalPrices(out), nil
}

func (s *service) marketProducts(ctx context.Context, marketID string) ([]product.Product, error) {
	if strings.TrimSpace(marketID) == "" {
		return nil, ErrMarketRequired
	}
	return s.products.GetByMarket(ctx, marketID)
}

func nameOf(p product.Product) string {
	if strings.TrimSpace(p.Category) == "" {
		return uncategorized
	}
	return p.Category
}
