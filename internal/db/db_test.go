package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mercado-be/internal/apperr"
	"mercado-be/internal/config"
	"mercado-be/internal/market"
	"mercado-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallSeed = `
markets:
  - id: m-1
    name: Mercado Um
products:
  - id: m-1-p-1
    market_id: m-1
    name: Arroz
    price: "10.00"
    stock: 4
    discount: "10"
  - id: m-1-p-2
    market_id: m-1
    name: Sal
    price: "2.00"
    stock: 1
users:
  - id: admin-1
    email: admin@email.com
    password: secret
    role: ADMIN
    market_id: m-1
`

func TestLoadSeed_Default(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)

	assert.Len(t, seed.Markets, 3)
	assert.Len(t, seed.Users, 4)
	assert.NotEmpty(t, seed.Products)
	assert.Equal(t, "market-a", seed.Markets[0].ID)
	assert.Equal(t, 2024, seed.Markets[0].CreatedAt.Year())
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallSeed), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Products, 2)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read seed file")

	_, err = ParseSeed([]byte("markets: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse seed")
}

func TestNew_DefaultSeed(t *testing.T) {
	ctx := context.Background()
	seed, err := LoadSeed("")
	require.NoError(t, err)

	database, err := New(seed)
	require.NoError(t, err)

	markets, err := database.Markets.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, markets, 3)

	for _, m := range markets {
		products, err := database.Products.GetByMarket(ctx, m.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, products, m.ID)
	}

	admin, err := database.Users.FindByEmail(ctx, "admin.b@email.com")
	require.NoError(t, err)
	assert.True(t, user.CanManageMarket(admin, "market-b"))
	assert.True(t, user.CheckPasswordHash("123456", admin.PasswordHash))

	orders, err := database.Orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestNew_Independent(t *testing.T) {
	ctx := context.Background()
	seed, err := ParseSeed([]byte(smallSeed))
	require.NoError(t, err)

	first, err := New(seed)
	require.NoError(t, err)
	second, err := New(seed)
	require.NoError(t, err)

	_, err = first.Products.UpdateStock(ctx, "m-1-p-1", 0)
	require.NoError(t, err)

	p, err := second.Products.GetByID(ctx, "m-1-p-1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
	assert.Equal(t, "10.00", p.Price.StringFixed(2))
	assert.Equal(t, "10", p.Discount.String())
}

func TestNew_InvalidSeed(t *testing.T) {
	tests := []struct {
		name    string
		seed    Seed
		wantErr error
		wantMsg string
	}{
		{
			name: "ProductUnknownMarket",
			seed: Seed{
				Markets:  []MarketSeed{{ID: "m-1"}},
				Products: []ProductSeed{{ID: "p-1", MarketID: "m-2", Price: "1"}},
			},
			wantErr: market.ErrMarketNotFound,
		},
		{
			name: "BadPrice",
			seed: Seed{
				Markets:  []MarketSeed{{ID: "m-1"}},
				Products: []ProductSeed{{ID: "p-1", MarketID: "m-1", Price: "abc"}},
			},
			wantMsg: "invalid price",
		},
		{
			name: "NegativeStock",
			seed: Seed{
				Markets:  []MarketSeed{{ID: "m-1"}},
				Products: []ProductSeed{{ID: "p-1", MarketID: "m-1", Price: "1", Stock: -1}},
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "DuplicateMarket",
			seed:    Seed{Markets: []MarketSeed{{ID: "m-1"}, {ID: "m-1"}}},
			wantErr: market.ErrDuplicateMarket,
		},
		{
			name: "AdminUnknownMarket",
			seed: Seed{
				Markets: []MarketSeed{{ID: "m-1"}},
				Users:   []UserSeed{{ID: "a-1", Email: "a@email.com", Password: "x", Role: "ADMIN", MarketID: "m-9"}},
			},
			wantErr: market.ErrMarketNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&tt.seed)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallSeed), 0o600))

	database, err := Open(&config.Config{SeedFile: path})
	require.NoError(t, err)
	assert.True(t, database.Markets.Exists(context.Background(), "m-1"))

	_, err = Open(&config.Config{SeedFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
