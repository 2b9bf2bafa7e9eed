package repository

import (
	"context"
	"fmt"

	"ecubot/database"
	"ecubot/models"

	"github.com/jackc/pgx/v5"
)

// VoiceSessionRepository implements the service.VoiceSessionRepository interface
type VoiceSessionRepository struct {
	q queryable
}

// NewVoiceSessionRepository creates a new voice session repository
func NewVoiceSessionRepository(db *database.DB) *VoiceSessionRepository {
	return &VoiceSessionRepository{q: db.Pool}
}

// newVoiceSessionRepositoryWithTx creates a new voice session repository with a transaction
func newVoiceSessionRepositoryWithTx(tx queryable) *VoiceSessionRepository {
	return &VoiceSessionRepository{q: tx}
}

// GetByUserID retrieves a user's voice session, nil if absent
func (r *VoiceSessionRepository) GetByUserID(ctx context.Context, userID int64) (*models.VoiceSession, error) {
	query := `
		SELECT user_id, total_seconds, open_since, updated_at
		FROM voice_sessions
		WHERE user_id = $1
	`

	var session models.VoiceSession
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&session.UserID,
		&session.TotalSeconds,
		&session.OpenSince,
		&session.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voice session for user %d: %w", userID, err)
	}

	return &session, nil
}

// Upsert writes a voice session record
func (r *VoiceSessionRepository) Upsert(ctx context.Context, session *models.VoiceSession) error {
	query := `
		INSERT INTO voice_sessions (user_id, total_seconds, open_since, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET total_seconds = EXCLUDED.total_seconds,
		    open_since = EXCLUDED.open_since,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, session.UserID, session.TotalSeconds, session.OpenSince); err != nil {
		return fmt.Errorf("failed to upsert voice session for user %d: %w", session.UserID, err)
	}

	return nil
}

// GetOpen returns all sessions with an in-progress open window
func (r *VoiceSessionRepository) GetOpen(ctx context.Context) ([]*models.VoiceSession, error) {
	query := `
		SELECT user_id, total_seconds, open_since, updated_at
		FROM voice_sessions
		WHERE open_since IS NOT NULL
	`

	return r.query(ctx, query)
}

// GetAll returns all voice sessions
func (r *VoiceSessionRepository) GetAll(ctx context.Context) ([]*models.VoiceSession, error) {
	query := `
		SELECT user_id, total_seconds, open_since, updated_at
		FROM voice_sessions
	`

	return r.query(ctx, query)
}

func (r *VoiceSessionRepository) query(ctx context.Context, query string, args ...any) ([]*models.VoiceSession, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get voice sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.VoiceSession
	for rows.Next() {
		var session models.VoiceSession
		err := rows.Scan(
			&session.UserID,
			&session.TotalSeconds,
			&session.OpenSince,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voice session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voice sessions: %w", err)
	}

	return sessions, nil
}
