package service

import (
	"context"
	"time"

	"ecubot/events"
	"ecubot/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByUserID retrieves an account by Discord user ID, nil if absent
	GetByUserID(ctx context.Context, userID int64) (*models.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, userID int64, initialBalance int64) (*models.Account, error)

	// AddBalance adds to an account's balance atomically
	AddBalance(ctx context.Context, userID int64, amount int64) error

	// DeductBalance deducts from an account's balance atomically, failing if insufficient funds
	DeductBalance(ctx context.Context, userID int64, amount int64) error

	// Top returns the richest accounts in descending balance order
	Top(ctx context.Context, limit int) ([]*models.Account, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// DailyClaimRepository defines the interface for daily claim data access
type DailyClaimRepository interface {
	// GetByUserID retrieves a user's claim record, nil if they never claimed
	GetByUserID(ctx context.Context, userID int64) (*models.DailyClaim, error)

	// Upsert records the time of a user's latest claim
	Upsert(ctx context.Context, userID int64, claimedAt time.Time) error
}

// VoiceSessionRepository defines the interface for voice session data access
type VoiceSessionRepository interface {
	// GetByUserID retrieves a user's voice session, nil if absent
	GetByUserID(ctx context.Context, userID int64) (*models.VoiceSession, error)

	// Upsert writes a voice session record
	Upsert(ctx context.Context, session *models.VoiceSession) error

	// GetOpen returns all sessions with an in-progress open window
	GetOpen(ctx context.Context) ([]*models.VoiceSession, error)

	// GetAll returns all voice sessions
	GetAll(ctx context.Context) ([]*models.VoiceSession, error)
}

// RoleRuleRepository defines the interface for voice role rule data access
type RoleRuleRepository interface {
	// Create persists a new rule
	Create(ctx context.Context, rule *models.RoleRule) error

	// DeleteByRoleID removes all rules targeting a role, returning the count
	DeleteByRoleID(ctx context.Context, roleID int64) (int64, error)

	// GetAll returns all configured rules
	GetAll(ctx context.Context) ([]*models.RoleRule, error)
}

// LedgerService owns all balance state
type LedgerService interface {
	// GetBalance returns the user's balance, lazily creating the account
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// Adjust applies a signed delta to the user's balance and returns the new
	// balance. A delta that would take the balance below zero is rejected
	// with ErrInsufficientBalance.
	Adjust(ctx context.Context, userID int64, delta int64, txType models.TransactionType, metadata map[string]any) (int64, error)
}

// DailyService handles the daily écus claim cooldown
type DailyService interface {
	// CanClaim reports whether the user's cooldown has elapsed
	CanClaim(ctx context.Context, userID int64) (bool, error)

	// Claim records the claim and credits the reward atomically
	Claim(ctx context.Context, userID int64) (*models.DailyClaimResult, error)

	// TimeUntilNext returns the non-negative seconds until the next claim
	TimeUntilNext(ctx context.Context, userID int64) (int64, error)
}

// VoiceService tracks time spent in voice channels
type VoiceService interface {
	// HandleJoin transitions a user to Connected
	HandleJoin(ctx context.Context, userID int64, now time.Time) error

	// HandleLeave folds the open window into the total and disconnects
	HandleLeave(ctx context.Context, userID int64, now time.Time) error

	// Flush folds every open window into its total and re-bases the window.
	// Idempotent with respect to accumulated time.
	Flush(ctx context.Context, now time.Time) error

	// EffectiveTotal returns accumulated seconds including the open window
	EffectiveTotal(ctx context.Context, userID int64, now time.Time) (int64, error)

	// AllEffectiveTotals returns effective totals for every tracked user
	AllEffectiveTotals(ctx context.Context, now time.Time) (map[int64]int64, error)

	// SyncConnected synthesizes open windows for users already connected at
	// startup, without double-crediting users that already have one.
	SyncConnected(ctx context.Context, userIDs []int64, now time.Time) error

	// TopByVoiceTime returns the voice-time leaderboard
	TopByVoiceTime(ctx context.Context, limit int, now time.Time) ([]*models.VoiceRankEntry, error)
}

// RoleRuleService manages voice role rules and their evaluation
type RoleRuleService interface {
	// AddRule validates and persists a rule
	AddRule(ctx context.Context, roleID, minSeconds, maxSeconds int64) (*models.RoleRule, error)

	// RemoveRulesForRole removes all rules for a role, returning the count
	RemoveRulesForRole(ctx context.Context, roleID int64) (int64, error)

	// ListRules returns all configured rules
	ListRules(ctx context.Context) ([]*models.RoleRule, error)
}

// BlackjackService runs interactive blackjack hands
type BlackjackService interface {
	// Start deals a new hand, reserving (not debiting) the wager
	Start(ctx context.Context, ownerID int64, wager int64) (*models.BlackjackOutcome, error)

	// Hit draws a card for the player; busting settles the loss
	Hit(ctx context.Context, ownerID, actorID int64) (*models.BlackjackOutcome, error)

	// Stand plays out the dealer and settles the hand
	Stand(ctx context.Context, ownerID, actorID int64) (*models.BlackjackOutcome, error)

	// ExpireSessions reaps abandoned hands older than maxAge; no money moves
	ExpireSessions(maxAge time.Duration) int
}

// RouletteService runs interactive roulette boards
type RouletteService interface {
	// Open creates a new betting board for the owner
	Open(ownerID int64) (*models.RouletteSession, error)

	// PlaceBet validates and debits a stake, accumulating it on the board.
	// Returns the board and the owner's new balance.
	PlaceBet(ctx context.Context, ownerID, actorID int64, selection models.BetSelection, amount int64) (*models.RouletteSession, int64, error)

	// Spin resolves the board; single-shot and terminal
	Spin(ctx context.Context, ownerID, actorID int64) (*models.SpinResult, error)

	// ExpireSessions reaps abandoned boards older than maxAge
	ExpireSessions(maxAge time.Duration) int
}

// SlotsService runs the single-shot slot machine
type SlotsService interface {
	// Play debits the wager, draws the grid and settles any payout
	Play(ctx context.Context, userID int64, wager int64) (*models.SlotsResult, error)
}

// LeaderboardService exposes ranking queries
type LeaderboardService interface {
	// TopBalances returns the balance leaderboard
	TopBalances(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	DailyClaimRepository() DailyClaimRepository
	VoiceSessionRepository() VoiceSessionRepository
	RoleRuleRepository() RoleRuleRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
