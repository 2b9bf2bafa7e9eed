package repository

import (
	"context"
	"testing"

	"ecubot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetByUserID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("account not found", func(t *testing.T) {
		account, err := repo.GetByUserID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("account found", func(t *testing.T) {
		created, err := repo.Create(ctx, 111111, 1000)
		require.NoError(t, err)
		require.NotNil(t, created)

		account, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, int64(111111), account.UserID)
		assert.Equal(t, int64(1000), account.Balance)
		assert.False(t, account.CreatedAt.IsZero())
	})
}

func TestAccountRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		account, err := repo.Create(ctx, 222222, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(222222), account.UserID)
		assert.Equal(t, int64(1000), account.Balance)
	})

	t.Run("duplicate user id", func(t *testing.T) {
		_, err := repo.Create(ctx, 333333, 1000)
		require.NoError(t, err)

		_, err = repo.Create(ctx, 333333, 1000)
		assert.Error(t, err)
	})
}

func TestAccountRepository_AddBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("adds to existing account", func(t *testing.T) {
		_, err := repo.Create(ctx, 444444, 1000)
		require.NoError(t, err)

		err = repo.AddBalance(ctx, 444444, 500)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 444444)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), account.Balance)
	})

	t.Run("missing account", func(t *testing.T) {
		err := repo.AddBalance(ctx, 999999, 500)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := repo.AddBalance(ctx, 444444, 0)
		assert.Error(t, err)
	})
}

func TestAccountRepository_DeductBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("deducts within balance", func(t *testing.T) {
		_, err := repo.Create(ctx, 555555, 1000)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 555555, 400)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 555555)
		require.NoError(t, err)
		assert.Equal(t, int64(600), account.Balance)
	})

	t.Run("rejects overdraft", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 555555, 10000)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient balance")

		// Balance untouched
		account, err := repo.GetByUserID(ctx, 555555)
		require.NoError(t, err)
		assert.Equal(t, int64(600), account.Balance)
	})

	t.Run("missing account", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 999999, 100)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestAccountRepository_Top(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, 500)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 2, 2000)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 3, 1000)
	require.NoError(t, err)

	t.Run("orders by balance descending", func(t *testing.T) {
		accounts, err := repo.Top(ctx, 10)
		require.NoError(t, err)
		require.Len(t, accounts, 3)
		assert.Equal(t, int64(2), accounts[0].UserID)
		assert.Equal(t, int64(3), accounts[1].UserID)
		assert.Equal(t, int64(1), accounts[2].UserID)
	})

	t.Run("respects limit", func(t *testing.T) {
		accounts, err := repo.Top(ctx, 2)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, int64(2), accounts[0].UserID)
	})
}
