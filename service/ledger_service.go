package service

import (
	"context"
	"fmt"

	"ecubot/config"
	"ecubot/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, cfg *config.Config) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// GetBalance returns the user's balance, lazily creating the account with
// the starting balance on first access.
func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account.Balance, nil
}

// Adjust applies a signed delta to the user's balance. The write is
// transactional: a failed persistence write rolls back and surfaces the
// error, never acknowledging a balance the store does not hold.
func (s *ledgerService) Adjust(ctx context.Context, userID int64, delta int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return 0, err
	}

	newBalance, err := applyBalanceChange(ctx, uow, account, delta, txType, metadata)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}
