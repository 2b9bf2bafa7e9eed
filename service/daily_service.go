package service

import (
	"context"
	"fmt"
	"time"

	"ecubot/config"
	"ecubot/events"
	"ecubot/models"
)

type dailyService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
	now        func() time.Time
}

// NewDailyService creates a new daily claim service
func NewDailyService(uowFactory UnitOfWorkFactory, cfg *config.Config) DailyService {
	return &dailyService{
		uowFactory: uowFactory,
		cfg:        cfg,
		now:        time.Now,
	}
}

// CanClaim reports whether the user's cooldown has elapsed
func (s *dailyService) CanClaim(ctx context.Context, userID int64) (bool, error) {
	remaining, err := s.TimeUntilNext(ctx, userID)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

// TimeUntilNext returns the non-negative seconds until the next claim
func (s *dailyService) TimeUntilNext(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claim, err := uow.DailyClaimRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily claim: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if claim == nil {
		return 0, nil
	}

	elapsed := int64(s.now().Sub(claim.LastClaimAt).Seconds())
	remaining := s.cfg.DailyCooldown - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Claim records the claim timestamp and credits the reward in a single
// transaction, so a crash can neither double-deliver the reward nor charge
// the cooldown without paying out.
func (s *dailyService) Claim(ctx context.Context, userID int64) (*models.DailyClaimResult, error) {
	now := s.now()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claim, err := uow.DailyClaimRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily claim: %w", err)
	}
	if claim != nil && int64(now.Sub(claim.LastClaimAt).Seconds()) < s.cfg.DailyCooldown {
		return nil, ErrClaimOnCooldown
	}

	if err := uow.DailyClaimRepository().Upsert(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("failed to record daily claim: %w", err)
	}

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return nil, err
	}

	newBalance, err := applyBalanceChange(ctx, uow, account, s.cfg.DailyReward, models.TransactionTypeDailyClaim, nil)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.DailyClaimedEvent{
		UserID: userID,
		Reward: s.cfg.DailyReward,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DailyClaimResult{
		Reward:     s.cfg.DailyReward,
		NewBalance: newBalance,
	}, nil
}
