package product

import (
	"context"
	"fmt"
	"strings"

	"mercado-be/internal/logger"
	"mercado-be/internal/market"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the catalog surface used by customer screens and admin tooling.
// Reads cross the customer boundary, so they carry FinalPrice.
type Service interface {
	GetProductsByMarket(ctx context.Context, marketID string) ([]ProductWithFinalPrice, error)
	GetProductByID(ctx context.Context, id string) (*ProductWithFinalPrice, error)
	CreateProduct(ctx context.Context, input NewProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*Product, error)
	UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) (*Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (*Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	ValidateStock(ctx context.Context, id string, quantity int) (bool, error)
}

type service struct {
	repo       Repository
	marketRepo market.Repository
}

func NewService(repo Repository, marketRepo market.Repository) Service {
	return &service{repo: repo, marketRepo: marketRepo}
}

func (s *service) GetProductsByMarket(ctx context.Context, marketID string) ([]ProductWithFinalPrice, error) {
	products, err := s.repo.GetByMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	return WithFinalPrices(products), nil
}

func (s *service) GetProductByID(ctx context.Context, id string) (*ProductWithFinalPrice, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := WithFinalPrice(*p)
	return &view, nil
}

func (s *service) CreateProduct(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("market_id", input.MarketID),
	)

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(input.MarketID) == "" {
		return nil, ErrMarketRequired
	}
	if !s.marketRepo.Exists(ctx, input.MarketID) {
		log.Warn("create product for unknown market")
		return nil, market.ErrMarketNotFound
	}

	p, err := s.repo.Create(ctx, Product{
		MarketID:    input.MarketID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Discount:    input.Discount,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	})
	if err != nil {
		log.Warn("create product rejected", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		logger.FromCtx(ctx).Warn("update product rejected",
			zap.String("layer", "service"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (s *service) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*Product, error) {
	return s.repo.UpdatePrice(ctx, id, price)
}

func (s *service) UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) (*Product, error) {
	return s.repo.UpdateDiscount(ctx, id, discount)
}

func (s *service) UpdateStock(ctx context.Context, id string, stock int) (*Product, error) {
	p, err := s.repo.UpdateStock(ctx, id, stock)
	if err != nil {
		return nil, fmt.Errorf("update stock of %s: %w", id, err)
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.FromCtx(ctx).Info("product deleted",
			zap.String("layer", "service"),
			zap.String("product_id", id),
		)
	}
	return deleted, nil
}

// ValidateStock reports whether quantity units of the product are available.
func (s *service) ValidateStock(ctx context.Context, id string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p.Stock >= quantity, nil
}
