package service

import (
	"context"
	"errors"
	"testing"

	"ecubot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoleRuleService_AddRule(t *testing.T) {
	ctx := context.Background()

	t.Run("valid rule", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockRuleRepo := new(MockRoleRuleRepository)
		mockUoW.SetRepositories(nil, nil, nil, nil, mockRuleRepo)

		service := NewRoleRuleService(mockFactory)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockRuleRepo.On("Create", ctx, mock.MatchedBy(func(r *models.RoleRule) bool {
			return r.RoleID == 555 && r.MinSeconds == 0 && r.MaxSeconds == 3600
		})).Return(nil)

		rule, err := service.AddRule(ctx, 555, 0, 3600)
		require.NoError(t, err)
		assert.Equal(t, int64(555), rule.RoleID)
		mockRuleRepo.AssertExpectations(t)
	})

	t.Run("negative min", func(t *testing.T) {
		mockFactory := new(MockUnitOfWorkFactory)
		service := NewRoleRuleService(mockFactory)

		_, err := service.AddRule(ctx, 555, -1, 100)
		assert.True(t, errors.Is(err, ErrInvalidRuleRange))
		mockFactory.AssertNotCalled(t, "Create")
	})

	t.Run("max below min", func(t *testing.T) {
		mockFactory := new(MockUnitOfWorkFactory)
		service := NewRoleRuleService(mockFactory)

		_, err := service.AddRule(ctx, 555, 3600, 60)
		assert.True(t, errors.Is(err, ErrInvalidRuleRange))
	})
}

func TestRoleRuleService_RemoveRulesForRole(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRuleRepo := new(MockRoleRuleRepository)
	mockUoW.SetRepositories(nil, nil, nil, nil, mockRuleRepo)

	service := NewRoleRuleService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockRuleRepo.On("DeleteByRoleID", ctx, int64(555)).Return(int64(2), nil)

	removed, err := service.RemoveRulesForRole(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestEvaluateRules(t *testing.T) {
	rules := []*models.RoleRule{
		{RoleID: 10, MinSeconds: 0, MaxSeconds: 3599},
		{RoleID: 20, MinSeconds: 3600, MaxSeconds: 7199},
		{RoleID: 30, MinSeconds: 7200, MaxSeconds: 1 << 40},
	}

	t.Run("adds matched role", func(t *testing.T) {
		delta := EvaluateRules(1800, nil, rules)
		assert.Equal(t, []int64{10}, delta.ToAdd)
		assert.Empty(t, delta.ToRemove)
	})

	t.Run("swaps roles when crossing a threshold", func(t *testing.T) {
		delta := EvaluateRules(3600, []int64{10}, rules)
		assert.Equal(t, []int64{20}, delta.ToAdd)
		assert.Equal(t, []int64{10}, delta.ToRemove)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		delta := EvaluateRules(3599, []int64{10}, rules)
		assert.True(t, delta.Empty())

		delta = EvaluateRules(7199, []int64{20}, rules)
		assert.True(t, delta.Empty())
	})

	t.Run("never touches roles outside the rule set", func(t *testing.T) {
		delta := EvaluateRules(1800, []int64{10, 999}, rules)
		assert.True(t, delta.Empty())
	})

	t.Run("idempotent after applying the delta", func(t *testing.T) {
		held := []int64{10}
		delta := EvaluateRules(7200, held, rules)
		assert.Equal(t, []int64{30}, delta.ToAdd)
		assert.Equal(t, []int64{10}, delta.ToRemove)

		// Apply the delta and re-evaluate
		delta = EvaluateRules(7200, []int64{30}, rules)
		assert.True(t, delta.Empty())
	})

	t.Run("overlapping rules for one role", func(t *testing.T) {
		overlapping := []*models.RoleRule{
			{RoleID: 40, MinSeconds: 0, MaxSeconds: 100},
			{RoleID: 40, MinSeconds: 500, MaxSeconds: 600},
		}
		delta := EvaluateRules(550, nil, overlapping)
		assert.Equal(t, []int64{40}, delta.ToAdd)

		delta = EvaluateRules(300, []int64{40}, overlapping)
		assert.Equal(t, []int64{40}, delta.ToRemove)
	})

	t.Run("no rules", func(t *testing.T) {
		delta := EvaluateRules(1000, []int64{10}, nil)
		assert.True(t, delta.Empty())
	})
}
