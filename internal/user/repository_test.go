package user

import (
	"context"
	"testing"

	"mercado-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	marketA := "market-a"

	t.Run("Success", func(t *testing.T) {
		repo := NewRepository()
		u, err := repo.Create(ctx, User{Email: "cliente@email.com", Role: RoleCustomer})
		require.NoError(t, err)
		assert.Contains(t, u.ID, "user-")
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("EmailUniqueIgnoringCase", func(t *testing.T) {
		repo := NewRepository()
		_, err := repo.Create(ctx, User{Email: "cliente@email.com", Role: RoleCustomer})
		require.NoError(t, err)

		_, err = repo.Create(ctx, User{Email: " Cliente@Email.com", Role: RoleCustomer})
		assert.ErrorIs(t, err, ErrEmailExists)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		repo := NewRepository()
		_, err := repo.Create(ctx, User{ID: "u-1", Email: "a@email.com", Role: RoleCustomer})
		require.NoError(t, err)
		_, err = repo.Create(ctx, User{ID: "u-1", Email: "b@email.com", Role: RoleCustomer})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("RoleRules", func(t *testing.T) {
		repo := NewRepository()

		_, err := repo.Create(ctx, User{Email: "x@email.com", Role: RoleAdmin})
		assert.ErrorIs(t, err, ErrAdminMarket)

		_, err = repo.Create(ctx, User{Email: "y@email.com", Role: RoleCustomer, MarketID: &marketA})
		assert.ErrorIs(t, err, ErrAdminMarket)

		_, err = repo.Create(ctx, User{Email: "z@email.com", Role: "SELLER"})
		assert.ErrorIs(t, err, ErrInvalidRole)

		_, err = repo.Create(ctx, User{Role: RoleCustomer})
		assert.ErrorIs(t, err, ErrEmailRequired)

		admin, err := repo.Create(ctx, User{Email: "admin.a@email.com", Role: RoleAdmin, MarketID: &marketA})
		require.NoError(t, err)
		assert.True(t, admin.IsAdmin())
	})
}

func TestRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	created, err := repo.Create(ctx, User{ID: "customer-1", Email: "cliente@email.com", Role: RoleCustomer})
	require.NoError(t, err)

	u, err := repo.FindByEmail(ctx, "CLIENTE@email.com")
	require.NoError(t, err)
	assert.Equal(t, created, u)

	u, err = repo.GetByID(ctx, "customer-1")
	require.NoError(t, err)
	assert.Equal(t, "cliente@email.com", u.Email)

	_, err = repo.FindByEmail(ctx, "nobody@email.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
