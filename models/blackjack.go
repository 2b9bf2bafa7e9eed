package models

import "time"

// BlackjackResult represents the terminal outcome of a blackjack hand
type BlackjackResult string

const (
	BlackjackInProgress BlackjackResult = "in_progress"
	BlackjackWin        BlackjackResult = "win"
	BlackjackLoss       BlackjackResult = "loss"
	BlackjackPush       BlackjackResult = "push"
	BlackjackBust       BlackjackResult = "bust"
)

// BlackjackSession holds the state of one interactive blackjack hand.
// The wager is reserved, not debited; money only moves at resolution.
type BlackjackSession struct {
	OwnerID     int64
	PlayerCards []int
	DealerCards []int
	Wager       int64
	Finished    bool
	CreatedAt   time.Time
}

// BlackjackOutcome is returned to the delivery layer after every action
type BlackjackOutcome struct {
	Result      BlackjackResult
	PlayerCards []int
	DealerCards []int
	PlayerScore int
	DealerScore int
	Wager       int64
	NewBalance  int64 // only meaningful when Result is terminal
}
