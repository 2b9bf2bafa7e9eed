package repository

import (
	"context"
	"testing"

	"ecubot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRuleRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRoleRuleRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		rule := testutil.CreateTestRoleRule(123456, 0, 3600)
		err := repo.Create(ctx, rule)
		require.NoError(t, err)
		assert.NotZero(t, rule.ID)
		assert.False(t, rule.CreatedAt.IsZero())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		rule := testutil.CreateTestRoleRule(123456, 3600, 60)
		err := repo.Create(ctx, rule)
		assert.Error(t, err) // CHECK constraint
	})
}

func TestRoleRuleRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRoleRuleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestRoleRule(2, 3600, 7200)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestRoleRule(1, 0, 3599)))

	t.Run("ordered by min seconds", func(t *testing.T) {
		rules, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, int64(1), rules[0].RoleID)
		assert.Equal(t, int64(2), rules[1].RoleID)
	})
}

func TestRoleRuleRepository_DeleteByRoleID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRoleRuleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestRoleRule(777, 0, 100)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestRoleRule(777, 101, 200)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestRoleRule(888, 0, 100)))

	t.Run("deletes all rules for role", func(t *testing.T) {
		count, err := repo.DeleteByRoleID(ctx, 777)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		rules, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, int64(888), rules[0].RoleID)
	})

	t.Run("no rules to delete", func(t *testing.T) {
		count, err := repo.DeleteByRoleID(ctx, 999)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
