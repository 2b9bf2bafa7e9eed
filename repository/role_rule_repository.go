package repository

import (
	"context"
	"fmt"

	"ecubot/database"
	"ecubot/models"
)

// RoleRuleRepository implements the service.RoleRuleRepository interface
type RoleRuleRepository struct {
	q queryable
}

// NewRoleRuleRepository creates a new role rule repository
func NewRoleRuleRepository(db *database.DB) *RoleRuleRepository {
	return &RoleRuleRepository{q: db.Pool}
}

// newRoleRuleRepositoryWithTx creates a new role rule repository with a transaction
func newRoleRuleRepositoryWithTx(tx queryable) *RoleRuleRepository {
	return &RoleRuleRepository{q: tx}
}

// Create persists a new rule
func (r *RoleRuleRepository) Create(ctx context.Context, rule *models.RoleRule) error {
	query := `
		INSERT INTO voice_role_rules (role_id, min_seconds, max_seconds)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, rule.RoleID, rule.MinSeconds, rule.MaxSeconds).
		Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create role rule for role %d: %w", rule.RoleID, err)
	}

	return nil
}

// DeleteByRoleID removes all rules targeting a role, returning the count
func (r *RoleRuleRepository) DeleteByRoleID(ctx context.Context, roleID int64) (int64, error) {
	query := `
		DELETE FROM voice_role_rules
		WHERE role_id = $1
	`

	result, err := r.q.Exec(ctx, query, roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete role rules for role %d: %w", roleID, err)
	}

	return result.RowsAffected(), nil
}

// GetAll returns all configured rules
func (r *RoleRuleRepository) GetAll(ctx context.Context) ([]*models.RoleRule, error) {
	query := `
		SELECT id, role_id, min_seconds, max_seconds, created_at
		FROM voice_role_rules
		ORDER BY min_seconds, id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get role rules: %w", err)
	}
	defer rows.Close()

	var rules []*models.RoleRule
	for rows.Next() {
		var rule models.RoleRule
		err := rows.Scan(
			&rule.ID,
			&rule.RoleID,
			&rule.MinSeconds,
			&rule.MaxSeconds,
			&rule.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role rule: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate role rules: %w", err)
	}

	return rules, nil
}
