// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package sec

// # Account Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Can mint chapter and collectible series
	RoleCreator UserRole = "creator"

	// Default role for any account with a valid signature
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleCreator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
