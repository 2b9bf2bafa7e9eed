package models

import "time"

// DailyClaim records when a user last collected their daily écus
type DailyClaim struct {
	UserID      int64     `db:"user_id"`
	LastClaimAt time.Time `db:"last_claim_at"`
}

// DailyClaimResult is returned to the user after a successful claim
type DailyClaimResult struct {
	Reward     int64
	NewBalance int64
}
