// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clefworks/partitura/internal/platform/sec"
)

/*
TestRole_AtLeast exercises the role hierarchy in both directions.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.Role
		target sec.Role
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_staff", sec.RoleAdmin, sec.RoleStaff, true},
		{"staff_meets_staff", sec.RoleStaff, sec.RoleStaff, true},
		{"staff_below_admin", sec.RoleStaff, sec.RoleAdmin, false},
		{"composer_meets_composer", sec.RoleComposer, sec.RoleComposer, true},
		{"composer_below_staff", sec.RoleComposer, sec.RoleStaff, false},
		{"unknown_below_composer", sec.Role("guest"), sec.RoleComposer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}
