package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The accepted role set mirrors the CHECK constraint on users.role.

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), "%s", r)
	}
	assert.ElementsMatch(t, AllRoles,
		[]Role{RoleAdmin, RoleEquipmentManager, RoleEquipmentAssistant, RoleReporter})

	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
