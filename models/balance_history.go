package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeInitial        TransactionType = "initial"
	TransactionTypeDailyClaim     TransactionType = "daily_claim"
	TransactionTypeAdminAdjust    TransactionType = "admin_adjust"
	TransactionTypeBlackjackWin   TransactionType = "blackjack_win"
	TransactionTypeBlackjackLoss  TransactionType = "blackjack_loss"
	TransactionTypeRouletteBet    TransactionType = "roulette_bet"
	TransactionTypeRoulettePayout TransactionType = "roulette_payout"
	TransactionTypeSlotsBet       TransactionType = "slots_bet"
	TransactionTypeSlotsPayout    TransactionType = "slots_payout"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              int64           `db:"user_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}
