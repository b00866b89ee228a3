package db

import (
	"context"
	"fmt"

	"mercado-be/internal/config"
	"mercado-be/internal/logger"
	"mercado-be/internal/market"
	"mercado-be/internal/order"
	"mercado-be/internal/product"
	"mercado-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Database groups the in-memory stores of one marketplace instance. Each
// call to New returns stores that share nothing with any other Database.
type Database struct {
	Markets  market.Repository
	Products product.Repository
	Orders   order.Repository
	Users    user.Repository
}

// Open loads the seed named by cfg and builds a Database from it.
func Open(cfg *config.Config) (*Database, error) {
	seed, err := LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	return New(seed)
}

func New(seed *Seed) (*Database, error) {
	ctx := context.Background()

	markets, err := market.NewRepository(toMarkets(seed.Markets))
	if err != nil {
		return nil, fmt.Errorf("failed to seed markets: %w", err)
	}

	products := product.NewRepository()
	for _, ps := range seed.Products {
		if !markets.Exists(ctx, ps.MarketID) {
			return nil, fmt.Errorf("product %s: %w", ps.ID, market.ErrMarketNotFound)
		}
		p, err := toProduct(ps)
		if err != nil {
			return nil, err
		}
		if _, err := products.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", ps.ID, err)
		}
	}

	users := user.NewRepository()
	for _, us := range seed.Users {
		u, err := toUser(us)
		if err != nil {
			return nil, err
		}
		if u.MarketID != nil && !markets.Exists(ctx, *u.MarketID) {
			return nil, fmt.Errorf("user %s: %w", us.ID, market.ErrMarketNotFound)
		}
		if _, err := users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", us.ID, err)
		}
	}

	logger.L().Info("database seeded",
		zap.Int("markets", len(seed.Markets)),
		zap.Int("products", len(seed.Products)),
		zap.Int("users", len(seed.Users)),
	)

	return &Database{
		Markets:  markets,
		Products: products,
		Orders:   order.NewRepository(),
		Users:    users,
	}, nil
}

func toMarkets(seeds []MarketSeed) []market.Market {
	out := make([]market.Market, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, market.Market{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			AdminID:     s.AdminID,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.CreatedAt,
		})
	}
	return out
}

func toProduct(s ProductSeed) (product.Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return product.Product{}, fmt.Errorf("product %s: invalid price %q: %w", s.ID, s.Price, err)
	}
	discount := decimal.Zero
	if s.Discount != "" {
		if discount, err = decimal.NewFromString(s.Discount); err != nil {
			return product.Product{}, fmt.Errorf("product %s: invalid discount %q: %w", s.ID, s.Discount, err)
		}
	}
	return product.Product{
		ID:          s.ID,
		MarketID:    s.MarketID,
		Name:        s.Name,
		Description: s.Description,
		Price:       price,
		Stock:       s.Stock,
		Discount:    discount,
		ImageURL:    s.ImageURL,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.CreatedAt,
	}, nil
}

func toUser(s UserSeed) (user.User, error) {
	hash, err := user.HashPassword(s.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("user %s: failed to hash password: %w", s.ID, err)
	}
	u := user.User{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: hash,
		Role:         user.Role(s.Role),
		CreatedAt:    s.CreatedAt,
	}
	if s.MarketID != "" {
		marketID := s.MarketID
		u.MarketID = &marketID
	}
	return u, nil
}
