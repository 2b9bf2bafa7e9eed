package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecubot/events"
	"ecubot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDailyService_Claim_FirstClaim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockClaimRepo := new(MockDailyClaimRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, mockClaimRepo, nil, nil)

	service := NewDailyService(mockFactory, testConfig()).(*dailyService)
	service.now = func() time.Time { return now }

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(nil, nil)
	mockClaimRepo.On("Upsert", ctx, int64(123456), now).Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.Account{
		UserID:  123456,
		Balance: 1000,
	}, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(123456), int64(500)).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 123456 &&
			h.BalanceBefore == 1000 &&
			h.BalanceAfter == 1500 &&
			h.ChangeAmount == 500 &&
			h.TransactionType == models.TransactionTypeDailyClaim
	})).Return(nil)

	result, err := service.Claim(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, int64(500), result.Reward)
	assert.Equal(t, int64(1500), result.NewBalance)

	published := mockUoW.PublishedEvents()
	var claimed *events.DailyClaimedEvent
	for _, ev := range published {
		if e, ok := ev.(events.DailyClaimedEvent); ok {
			claimed = &e
		}
	}
	require.NotNil(t, claimed)
	assert.Equal(t, int64(500), claimed.Reward)

	mockClaimRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestDailyService_Claim_OnCooldown(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockClaimRepo := new(MockDailyClaimRepository)
	mockUoW.SetRepositories(nil, nil, mockClaimRepo, nil, nil)

	service := NewDailyService(mockFactory, testConfig()).(*dailyService)
	service.now = func() time.Time { return now }

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.DailyClaim{
		UserID:      123456,
		LastClaimAt: now.Add(-1 * time.Hour),
	}, nil)

	_, err := service.Claim(ctx, 123456)

	assert.True(t, errors.Is(err, ErrClaimOnCooldown))
	mockClaimRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestDailyService_Claim_ExactlyAtCooldownBoundary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockClaimRepo := new(MockDailyClaimRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, mockClaimRepo, nil, nil)

	service := NewDailyService(mockFactory, testConfig()).(*dailyService)
	service.now = func() time.Time { return now }

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Cooldown elapsed to the second: the claim goes through
	mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.DailyClaim{
		UserID:      123456,
		LastClaimAt: now.Add(-86400 * time.Second),
	}, nil)
	mockClaimRepo.On("Upsert", ctx, int64(123456), now).Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.Account{
		UserID:  123456,
		Balance: 1500,
	}, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(123456), int64(500)).Return(nil)
	mockHistoryRepo.On("Record", ctx, mock.Anything).Return(nil)

	result, err := service.Claim(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.NewBalance)
}

func TestDailyService_TimeUntilNext(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never claimed", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockClaimRepo := new(MockDailyClaimRepository)
		mockUoW.SetRepositories(nil, nil, mockClaimRepo, nil, nil)

		service := NewDailyService(mockFactory, testConfig()).(*dailyService)
		service.now = func() time.Time { return now }

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(nil, nil)

		remaining, err := service.TimeUntilNext(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining)

		canClaim, err := service.CanClaim(ctx, 123456)
		require.NoError(t, err)
		assert.True(t, canClaim)
	})

	t.Run("mid cooldown", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockClaimRepo := new(MockDailyClaimRepository)
		mockUoW.SetRepositories(nil, nil, mockClaimRepo, nil, nil)

		service := NewDailyService(mockFactory, testConfig()).(*dailyService)
		service.now = func() time.Time { return now }

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.DailyClaim{
			UserID:      123456,
			LastClaimAt: now.Add(-1000 * time.Second),
		}, nil)

		remaining, err := service.TimeUntilNext(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(85400), remaining)

		canClaim, err := service.CanClaim(ctx, 123456)
		require.NoError(t, err)
		assert.False(t, canClaim)
	})

	t.Run("cooldown long expired", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockClaimRepo := new(MockDailyClaimRepository)
		mockUoW.SetRepositories(nil, nil, mockClaimRepo, nil, nil)

		service := NewDailyService(mockFactory, testConfig()).(*dailyService)
		service.now = func() time.Time { return now }

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockClaimRepo.On("GetByUserID", ctx, int64(123456)).Return(&models.DailyClaim{
			UserID:      123456,
			LastClaimAt: now.Add(-72 * time.Hour),
		}, nil)

		remaining, err := service.TimeUntilNext(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining)
	})
}
