package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecubot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Deck indexes used by the scripted draws: 8 is a ten, 7 is a nine,
// 0 is a two, 12 is the ace.
const (
	drawTen  = 8
	drawNine = 7
	drawTwo  = 0
	drawAce  = 12
)

func TestHandScore(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
		want  int
	}{
		{"empty hand", nil, 0},
		{"two tens", []int{10, 10}, 20},
		{"natural", []int{11, 10}, 21},
		{"two aces soften", []int{11, 11}, 12},
		{"three aces", []int{11, 11, 11}, 13},
		{"soft ace demoted on bust", []int{11, 9, 5}, 15},
		{"hard bust stays bust", []int{10, 10, 5}, 25},
		{"ace stays soft under 21", []int{11, 9}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandScore(tt.cards))
		})
	}
}

func TestBlackjackService_Start_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive wager", func(t *testing.T) {
		mockFactory := new(MockUnitOfWorkFactory)
		service := NewBlackjackService(mockFactory, testConfig(), zeroRand())

		_, err := service.Start(ctx, 1, 0)
		assert.True(t, errors.Is(err, ErrInvalidWager))

		_, err = service.Start(ctx, 1, -50)
		assert.True(t, errors.Is(err, ErrInvalidWager))

		mockFactory.AssertNotCalled(t, "Create")
	})

	t.Run("wager exceeds balance", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockAccountRepo := new(MockAccountRepository)
		mockHistoryRepo := new(MockBalanceHistoryRepository)
		mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

		service := NewBlackjackService(mockFactory, testConfig(), zeroRand())

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(&models.Account{
			UserID:  1,
			Balance: 100,
		}, nil)

		_, err := service.Start(ctx, 1, 500)
		assert.True(t, errors.Is(err, ErrInvalidWager))
	})

	t.Run("second hand while one is open", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockAccountRepo := new(MockAccountRepository)
		mockHistoryRepo := new(MockBalanceHistoryRepository)
		mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

		service := NewBlackjackService(mockFactory, testConfig(), zeroRand())

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(&models.Account{
			UserID:  1,
			Balance: 1000,
		}, nil)

		_, err := service.Start(ctx, 1, 100)
		require.NoError(t, err)

		_, err = service.Start(ctx, 1, 100)
		assert.True(t, errors.Is(err, ErrSessionActive))
	})
}

func TestBlackjackService_StandWins(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

	// Player draws ten-ten (20), dealer ten-nine (19): dealer stands, player wins
	service := NewBlackjackService(mockFactory, testConfig(),
		scriptedRand(drawTen, drawTen, drawTen, drawNine))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	account := &models.Account{UserID: 1, Balance: 1000}
	mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(account, nil)
	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(100)).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 1 &&
			h.BalanceBefore == 1000 &&
			h.BalanceAfter == 1100 &&
			h.ChangeAmount == 100 &&
			h.TransactionType == models.TransactionTypeBlackjackWin
	})).Return(nil)

	outcome, err := service.Start(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, models.BlackjackInProgress, outcome.Result)
	assert.Equal(t, 20, outcome.PlayerScore)

	outcome, err = service.Stand(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BlackjackWin, outcome.Result)
	assert.Equal(t, 20, outcome.PlayerScore)
	assert.Equal(t, 19, outcome.DealerScore)
	assert.Equal(t, int64(1100), outcome.NewBalance)

	// The hand is terminal
	_, err = service.Stand(ctx, 1, 1)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	mockAccountRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestBlackjackService_HitBusts(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

	// Player ten-ten, dealer two-two, then the hit draws a ten: 30, bust
	service := NewBlackjackService(mockFactory, testConfig(),
		scriptedRand(drawTen, drawTen, drawTwo, drawTwo, drawTen))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	account := &models.Account{UserID: 1, Balance: 1000}
	mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(account, nil)
	mockAccountRepo.On("DeductBalance", ctx, int64(1), int64(100)).Return(nil)

	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -100 &&
			h.TransactionType == models.TransactionTypeBlackjackLoss
	})).Return(nil)

	_, err := service.Start(ctx, 1, 100)
	require.NoError(t, err)

	outcome, err := service.Hit(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BlackjackBust, outcome.Result)
	assert.Equal(t, 30, outcome.PlayerScore)
	assert.Equal(t, int64(900), outcome.NewBalance)

	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_StandPush(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

	// Both hands are ten-ten: push, no money moves
	service := NewBlackjackService(mockFactory, testConfig(),
		scriptedRand(drawTen, drawTen, drawTen, drawTen))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	account := &models.Account{UserID: 1, Balance: 1000}
	mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(account, nil)

	_, err := service.Start(ctx, 1, 100)
	require.NoError(t, err)

	outcome, err := service.Stand(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BlackjackPush, outcome.Result)
	assert.Equal(t, int64(1000), outcome.NewBalance)

	mockAccountRepo.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlackjackService_Authorization(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

	service := NewBlackjackService(mockFactory, testConfig(), zeroRand())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(&models.Account{
		UserID:  1,
		Balance: 1000,
	}, nil)

	_, err := service.Start(ctx, 1, 100)
	require.NoError(t, err)

	_, err = service.Hit(ctx, 1, 2)
	assert.True(t, errors.Is(err, ErrUnauthorizedActor))

	_, err = service.Stand(ctx, 1, 2)
	assert.True(t, errors.Is(err, ErrUnauthorizedActor))

	// No hand at all
	_, err = service.Hit(ctx, 42, 42)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestBlackjackService_ExpireSessions(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, nil, nil, nil)

	service := NewBlackjackService(mockFactory, testConfig(), zeroRand())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByUserID", ctx, int64(1)).Return(&models.Account{
		UserID:  1,
		Balance: 1000,
	}, nil)

	_, err := service.Start(ctx, 1, 100)
	require.NoError(t, err)

	// Fresh hands survive
	assert.Equal(t, 0, service.ExpireSessions(time.Hour))

	// A cutoff in the future reaps the hand; no money ever moved
	assert.Equal(t, 1, service.ExpireSessions(-time.Second))

	_, err = service.Hit(ctx, 1, 1)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	mockAccountRepo.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}
