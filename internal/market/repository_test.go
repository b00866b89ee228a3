package market

import (
	"context"
	"testing"

	"mercado-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMarkets() []Market {
	return []Market{
		{ID: "market-a", Name: "Mercado A", AdminID: "admin-a"},
		{ID: "market-b", Name: "Mercado B", AdminID: "admin-b"},
	}
}

func TestRepository_GetAll(t *testing.T) {
	repo, err := NewRepository(seedMarkets())
	require.NoError(t, err)

	markets, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "market-a", markets[0].ID)
	assert.Equal(t, "market-b", markets[1].ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo, err := NewRepository(seedMarkets())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m, err := repo.GetByID(ctx, "market-b")
		require.NoError(t, err)
		assert.Equal(t, "Mercado B", m.Name)
		assert.True(t, repo.Exists(ctx, "market-b"))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "market-z")
		assert.ErrorIs(t, err, ErrMarketNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.False(t, repo.Exists(ctx, "market-z"))
	})
}

func TestNewRepository_InvalidSeed(t *testing.T) {
	t.Run("MissingID", func(t *testing.T) {
		_, err := NewRepository([]Market{{Name: "nameless"}})
		assert.ErrorIs(t, err, ErrMarketIDMissing)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := NewRepository([]Market{{ID: "m"}, {ID: "m"}})
		assert.ErrorIs(t, err, ErrDuplicateMarket)
	})
}
