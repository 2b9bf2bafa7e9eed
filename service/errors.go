package service

import "errors"

var (
	// ErrInvalidWager is returned when a wager is zero, negative or malformed.
	// Rejected before any state mutation.
	ErrInvalidWager = errors.New("invalid wager")

	// ErrInsufficientBalance is returned when a debit would take a balance
	// below zero. The ledger enforces this even when callers pre-validate.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnauthorizedActor is returned when someone other than the session
	// owner acts on a game. Dropped silently at the delivery layer.
	ErrUnauthorizedActor = errors.New("unauthorized actor")

	// ErrInvalidRuleRange is returned for role rules with min < 0 or max < min
	ErrInvalidRuleRange = errors.New("invalid rule range")

	// ErrGameFinished is returned for actions on an already resolved game
	ErrGameFinished = errors.New("game already finished")

	// ErrSessionNotFound is returned when no open game session exists
	ErrSessionNotFound = errors.New("game session not found")

	// ErrSessionActive is returned when the owner already has an open session
	ErrSessionActive = errors.New("game session already active")

	// ErrNoBets is returned when spinning a roulette board with no bets placed
	ErrNoBets = errors.New("no bets placed")

	// ErrClaimOnCooldown is returned when the daily reward is claimed early
	ErrClaimOnCooldown = errors.New("daily claim on cooldown")
)
