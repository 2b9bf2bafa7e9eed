package service

import (
	"context"
	"fmt"

	"ecubot/models"
)

type roleRuleService struct {
	uowFactory UnitOfWorkFactory
}

// NewRoleRuleService creates a new role rule service
func NewRoleRuleService(uowFactory UnitOfWorkFactory) RoleRuleService {
	return &roleRuleService{
		uowFactory: uowFactory,
	}
}

// AddRule validates and persists a rule
func (s *roleRuleService) AddRule(ctx context.Context, roleID, minSeconds, maxSeconds int64) (*models.RoleRule, error) {
	if minSeconds < 0 || maxSeconds < minSeconds {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidRuleRange, minSeconds, maxSeconds)
	}

	rule := &models.RoleRule{
		RoleID:     roleID,
		MinSeconds: minSeconds,
		MaxSeconds: maxSeconds,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.RoleRuleRepository().Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create role rule: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rule, nil
}

// RemoveRulesForRole removes all rules for a role, returning the count
func (s *roleRuleService) RemoveRulesForRole(ctx context.Context, roleID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.RoleRuleRepository().DeleteByRoleID(ctx, roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete role rules: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return removed, nil
}

// ListRules returns all configured rules
func (s *roleRuleService) ListRules(ctx context.Context) ([]*models.RoleRule, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rules, err := uow.RoleRuleRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role rules: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rules, nil
}

// EvaluateRules computes the role changes for a user given their effective
// voice total, the roles they currently hold and the configured rules.
//
// A role is matched when at least one of its rules' inclusive ranges
// contains the total. ToAdd holds matched roles not currently held; ToRemove
// holds roles that appear in some rule, are held, but are not matched. Roles
// outside the rule set are never touched, and re-evaluating after applying
// the delta yields an empty delta.
func EvaluateRules(effectiveTotal int64, heldRoles []int64, rules []*models.RoleRule) *models.RoleDelta {
	held := make(map[int64]bool, len(heldRoles))
	for _, roleID := range heldRoles {
		held[roleID] = true
	}

	matched := make(map[int64]bool)
	ruled := make(map[int64]bool)
	var ruledOrder []int64
	for _, rule := range rules {
		if !ruled[rule.RoleID] {
			ruled[rule.RoleID] = true
			ruledOrder = append(ruledOrder, rule.RoleID)
		}
		if rule.Matches(effectiveTotal) {
			matched[rule.RoleID] = true
		}
	}

	delta := &models.RoleDelta{}
	for _, roleID := range ruledOrder {
		switch {
		case matched[roleID] && !held[roleID]:
			delta.ToAdd = append(delta.ToAdd, roleID)
		case !matched[roleID] && held[roleID]:
			delta.ToRemove = append(delta.ToRemove, roleID)
		}
	}
	return delta
}
