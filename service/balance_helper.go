package service

import (
	"context"
	"fmt"

	"ecubot/events"
	"ecubot/models"
)

// getOrCreateAccount retrieves an account within the unit of work, creating
// it with the starting balance on first access. Creation records an initial
// balance history entry and emits a UserCreatedEvent.
func getOrCreateAccount(ctx context.Context, uow UnitOfWork, userID int64, startingBalance int64) (*models.Account, error) {
	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	account, err = uow.AccountRepository().Create(ctx, userID, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   0,
		BalanceAfter:    startingBalance,
		ChangeAmount:    startingBalance,
		TransactionType: models.TransactionTypeInitial,
	}
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to record initial balance: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:         userID,
		InitialBalance: startingBalance,
	})

	return account, nil
}

// applyBalanceChange mutates an account balance within the unit of work.
// This is the single entry point for all balance changes: it rejects debits
// that would take the balance below zero, records the history entry and
// emits a BalanceChangeEvent. Returns the new balance.
func applyBalanceChange(ctx context.Context, uow UnitOfWork, account *models.Account, delta int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	newBalance := account.Balance + delta
	if newBalance < 0 {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, account.Balance, -delta)
	}

	switch {
	case delta > 0:
		if err := uow.AccountRepository().AddBalance(ctx, account.UserID, delta); err != nil {
			return 0, fmt.Errorf("failed to add balance: %w", err)
		}
	case delta < 0:
		if err := uow.AccountRepository().DeductBalance(ctx, account.UserID, -delta); err != nil {
			return 0, fmt.Errorf("failed to deduct balance: %w", err)
		}
	default:
		return account.Balance, nil
	}

	history := &models.BalanceHistory{
		UserID:              account.UserID,
		BalanceBefore:       account.Balance,
		BalanceAfter:        newBalance,
		ChangeAmount:        delta,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return 0, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          account.UserID,
		OldBalance:      account.Balance,
		NewBalance:      newBalance,
		TransactionType: txType,
		ChangeAmount:    delta,
	})

	account.Balance = newBalance
	return newBalance, nil
}
