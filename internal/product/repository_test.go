package product

import (
	"context"
	"sync"
	"testing"
	"time"

	"mercado-be/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, seed ...Product) *repository {
	t.Helper()
	repo := NewRepository().(*repository)
	for _, p := range seed {
		_, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
	}
	return repo
}

func sampleProduct(id, marketID string, stock int) Product {
	return Product{
		ID:       id,
		MarketID: marketID,
		Name:     "Arroz " + id,
		Price:    decimal.RequireFromString("20.00"),
		Discount: decimal.NewFromInt(10),
		Stock:    stock,
	}
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsIDAndTimestamps", func(t *testing.T) {
		repo := newTestRepo(t)
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return fixed }

		p, err := repo.Create(ctx, Product{MarketID: "market-a", Name: "Feijão", Price: decimal.NewFromInt(8), Stock: 4})
		require.NoError(t, err)
		assert.Contains(t, p.ID, "market-a-product-")
		assert.Equal(t, fixed, p.CreatedAt)
		assert.Equal(t, fixed, p.UpdatedAt)
	})

	t.Run("KeepsSeedID", func(t *testing.T) {
		repo := newTestRepo(t)
		p, err := repo.Create(ctx, sampleProduct("p-1", "market-a", 1))
		require.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 1))
		_, err := repo.Create(ctx, sampleProduct("p-1", "market-a", 1))
		assert.ErrorIs(t, err, ErrDuplicateProduct)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := newTestRepo(t)

		bad := sampleProduct("p-2", "market-a", -1)
		_, err := repo.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrNegativeStock)

		bad = sampleProduct("p-2", "", 1)
		_, err = repo.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrMarketRequired)

		bad = sampleProduct("p-2", "market-a", 1)
		bad.Discount = decimal.NewFromInt(101)
		_, err = repo.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrDiscountOutOfRange)
	})
}

func TestRepository_GetByMarket(t *testing.T) {
	repo := newTestRepo(t,
		sampleProduct("a-1", "market-a", 1),
		sampleProduct("b-1", "market-b", 1),
		sampleProduct("a-2", "market-a", 1),
	)

	products, err := repo.GetByMarket(context.Background(), "market-a")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a-1", products[0].ID)
	assert.Equal(t, "a-2", products[1].ID)

	empty, err := repo.GetByMarket(context.Background(), "market-z")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_GetByID_ReturnsCopy(t *testing.T) {
	repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))
	ctx := context.Background()

	p, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	p.Stock = 999

	again, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesFields", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))
		later := time.Now().Add(time.Hour)
		repo.now = func() time.Time { return later }

		name := "Arroz Integral"
		stock := 8
		p, err := repo.Update(ctx, "p-1", UpdateProductInput{Name: &name, Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, "Arroz Integral", p.Name)
		assert.Equal(t, 8, p.Stock)
		assert.Equal(t, "market-a", p.MarketID)
		assert.Equal(t, later, p.UpdatedAt)
		assert.True(t, decimal.RequireFromString("20").Equal(p.Price))
	})

	t.Run("RejectsWholeUpdateOnInvalidField", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))

		name := "Renamed"
		stock := -3
		_, err := repo.Update(ctx, "p-1", UpdateProductInput{Name: &name, Stock: &stock})
		assert.ErrorIs(t, err, ErrNegativeStock)

		p, _ := repo.GetByID(ctx, "p-1")
		assert.Equal(t, "Arroz p-1", p.Name)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("Empty", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))
		_, err := repo.Update(ctx, "p-1", UpdateProductInput{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := newTestRepo(t)
		name := "x"
		_, err := repo.Update(ctx, "missing", UpdateProductInput{Name: &name})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_UpdatePriceAndDiscount(t *testing.T) {
	repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))
	ctx := context.Background()

	p, err := repo.UpdatePrice(ctx, "p-1", decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.Equal(t, "12.50", p.Price.StringFixed(2))

	_, err = repo.UpdatePrice(ctx, "p-1", decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, ErrNegativePrice)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	p, err = repo.UpdateDiscount(ctx, "p-1", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(p.Discount))

	_, err = repo.UpdateDiscount(ctx, "p-1", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrDiscountOutOfRange)
	_, err = repo.UpdateDiscount(ctx, "p-1", decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, ErrDiscountOutOfRange)
}

func TestRepository_StockWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateStock", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))

		p, err := repo.UpdateStock(ctx, "p-1", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock)

		_, err = repo.UpdateStock(ctx, "p-1", -1)
		assert.ErrorIs(t, err, ErrNegativeStock)

		_, err = repo.UpdateStock(ctx, "missing", 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("CompareAndSwapStock", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))

		p, err := repo.CompareAndSwapStock(ctx, "p-1", 5, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Stock)

		_, err = repo.CompareAndSwapStock(ctx, "p-1", 5, 1)
		assert.ErrorIs(t, err, ErrStockConflict)
		assert.ErrorIs(t, err, apperr.ErrConflict)

		_, err = repo.CompareAndSwapStock(ctx, "p-1", 2, -1)
		assert.ErrorIs(t, err, ErrNegativeStock)

		current, _ := repo.GetByID(ctx, "p-1")
		assert.Equal(t, 2, current.Stock)
	})

	t.Run("AdjustStock", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 5))

		p, err := repo.AdjustStock(ctx, "p-1", 3)
		require.NoError(t, err)
		assert.Equal(t, 8, p.Stock)

		_, err = repo.AdjustStock(ctx, "p-1", -9)
		assert.ErrorIs(t, err, ErrNegativeStock)

		current, _ := repo.GetByID(ctx, "p-1")
		assert.Equal(t, 8, current.Stock)
	})

	t.Run("ConcurrentAdjustNeverNegative", func(t *testing.T) {
		repo := newTestRepo(t, sampleProduct("p-1", "market-a", 50))

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.AdjustStock(ctx, "p-1", -1)
			}()
		}
		wg.Wait()

		current, _ := repo.GetByID(ctx, "p-1")
		assert.Equal(t, 0, current.Stock)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepo(t,
		sampleProduct("p-1", "market-a", 1),
		sampleProduct("p-2", "market-a", 1),
	)
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	products, _ := repo.GetByMarket(ctx, "market-a")
	require.Len(t, products, 1)
	assert.Equal(t, "p-2", products[0].ID)
}
