// Package columns resolves semantic roles from free-form uploaded column
// names. Matching is case-insensitive substring search in dataset column
// order; first match wins, no fallback candidates.
package columns

import (
	"strings"

	"skillboard/domain/tabular"
)

// Role is a semantic label resolved from a column name.
type Role string

const (
	RoleEmail     Role = "email"
	RoleName      Role = "name"
	RolePreScore  Role = "pre_score"
	RolePostScore Role = "post_score"
	RoleCourse    Role = "course"
)

// RoleMap holds the resolved column name per role. An absent key means
// the role is unresolved and the dependent feature is unavailable.
type RoleMap map[Role]string

// Column returns the resolved column for a role.
func (m RoleMap) Column(role Role) (string, bool) {
	name, ok := m[role]
	return name, ok
}

// Has reports whether a role resolved.
func (m RoleMap) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// DetectRole finds the first column matching the role's substring rule,
// in dataset column order.
func DetectRole(ds *tabular.Dataset, role Role) (string, bool) {
	for _, col := range ds.Columns {
		if matchesRole(col, role) {
			return col, true
		}
	}
	return "", false
}

func matchesRole(column string, role Role) bool {
	lower := strings.ToLower(column)
	switch role {
	case RoleEmail:
		return strings.Contains(lower, "email")
	case RoleName:
		return strings.Contains(lower, "name") && !strings.Contains(lower, "user")
	case RolePreScore:
		return strings.Contains(lower, "pre") && strings.Contains(lower, "score")
	case RolePostScore:
		return strings.Contains(lower, "post") && strings.Contains(lower, "score")
	case RoleCourse:
		return strings.Contains(lower, "course") || strings.Contains(lower, "program")
	}
	return false
}

// DetectScoreColumns returns ALL columns containing both the prefix
// ("pre" or "post") and "score", in dataset column order. Consumers only
// use the first today; the full list exists for multiple post-tests.
func DetectScoreColumns(ds *tabular.Dataset, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var matches []string
	for _, col := range ds.Columns {
		lower := strings.ToLower(col)
		if strings.Contains(lower, prefix) && strings.Contains(lower, "score") {
			matches = append(matches, col)
		}
	}
	return matches
}

// Resolve computes the full role map for a dataset.
func Resolve(ds *tabular.Dataset) RoleMap {
	m := make(RoleMap)
	for _, role := range []Role{RoleEmail, RoleName, RolePreScore, RolePostScore, RoleCourse} {
		if col, ok := DetectRole(ds, role); ok {
			m[role] = col
		}
	}
	return m
}
