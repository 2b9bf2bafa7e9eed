package repository

import (
	"context"
	"fmt"
	"time"

	"ecubot/database"
	"ecubot/models"

	"github.com/jackc/pgx/v5"
)

// DailyClaimRepository implements the service.DailyClaimRepository interface
type DailyClaimRepository struct {
	q queryable
}

// NewDailyClaimRepository creates a new daily claim repository
func NewDailyClaimRepository(db *database.DB) *DailyClaimRepository {
	return &DailyClaimRepository{q: db.Pool}
}

// newDailyClaimRepositoryWithTx creates a new daily claim repository with a transaction
func newDailyClaimRepositoryWithTx(tx queryable) *DailyClaimRepository {
	return &DailyClaimRepository{q: tx}
}

// GetByUserID retrieves a user's claim record, nil if they never claimed
func (r *DailyClaimRepository) GetByUserID(ctx context.Context, userID int64) (*models.DailyClaim, error) {
	query := `
		SELECT user_id, last_claim_at
		FROM daily_claims
		WHERE user_id = $1
	`

	var claim models.DailyClaim
	err := r.q.QueryRow(ctx, query, userID).Scan(&claim.UserID, &claim.LastClaimAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily claim for user %d: %w", userID, err)
	}

	return &claim, nil
}

// Upsert records the time of a user's latest claim
func (r *DailyClaimRepository) Upsert(ctx context.Context, userID int64, claimedAt time.Time) error {
	query := `
		INSERT INTO daily_claims (user_id, last_claim_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET last_claim_at = EXCLUDED.last_claim_at
	`

	if _, err := r.q.Exec(ctx, query, userID, claimedAt); err != nil {
		return fmt.Errorf("failed to upsert daily claim for user %d: %w", userID, err)
	}

	return nil
}
