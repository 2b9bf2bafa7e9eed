package models

import "time"

// RoleRule assigns a role to users whose voice time falls within an
// inclusive range of seconds. Multiple rules may target the same role.
type RoleRule struct {
	ID         int64     `db:"id"`
	RoleID     int64     `db:"role_id"`
	MinSeconds int64     `db:"min_seconds"`
	MaxSeconds int64     `db:"max_seconds"`
	CreatedAt  time.Time `db:"created_at"`
}

// Matches reports whether the given effective voice total satisfies the rule
func (r *RoleRule) Matches(effectiveTotal int64) bool {
	return effectiveTotal >= r.MinSeconds && effectiveTotal <= r.MaxSeconds
}

// RoleDelta is the set of role changes produced by a rule evaluation
type RoleDelta struct {
	ToAdd    []int64
	ToRemove []int64
}

// Empty reports whether the evaluation produced no changes
func (d *RoleDelta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}
