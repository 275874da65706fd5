// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sec

// # User Roles

// Role represents the authorization level granted to an account. Each
// audience gets a named variant rather than overloading a single staff flag.
type Role string

const (
	// Unrestricted system access, including settlement payment and
	// batch price mutation
	RoleAdmin Role = "admin"

	// Back-office staff: catalog and pricing writes, order intake,
	// threshold detection
	RoleStaff Role = "staff"

	// Composers can read their own settlement and sales figures
	RoleComposer Role = "composer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleStaff:
		return 20
	case RoleComposer:
		return 10
	default:
		return 0
	}
}
