package auth

import (
	"testing"

	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		role models.Role
		op   Operation
		want bool
	}{
		{models.RoleAdmin, OpUserDelete, true},
		{models.RoleAdmin, OpTicketExport, true},
		{models.RoleEquipmentManager, OpEquipmentDelete, true},
		{models.RoleEquipmentManager, OpStatusCreate, true},
		{models.RoleEquipmentManager, OpTicketBulkTransition, true},

		{models.RoleEquipmentAssistant, OpTicketCreate, true},
		{models.RoleEquipmentAssistant, OpTicketAssign, true},
		{models.RoleEquipmentAssistant, OpTicketTransition, true},
		{models.RoleEquipmentAssistant, OpTicketBulkTransition, false},
		{models.RoleEquipmentAssistant, OpTicketExport, false},
		{models.RoleEquipmentAssistant, OpTicketDelete, false},
		{models.RoleEquipmentAssistant, OpEquipmentCreate, false},
		{models.RoleEquipmentAssistant, OpStatusDelete, false},
		{models.RoleEquipmentAssistant, OpUserList, false},

		{models.RoleReporter, OpTicketCreate, true},
		{models.RoleReporter, OpTicketView, true},
		{models.RoleReporter, OpTicketAssign, false},
		{models.RoleReporter, OpTicketTransition, false},
		{models.RoleReporter, OpEquipmentSetStatus, false},

		{models.Role("GHOST"), OpTicketView, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanPerform(tt.role, tt.op), "%s / %s", tt.role, tt.op)
	}
}

func TestCanAlterUserSelf(t *testing.T) {
	target := &models.User{ID: 1, Role: models.RoleAdmin}
	newRole := models.RoleReporter

	assert.False(t, CanAlterUser(1, models.RoleAdmin, target, &newRole))
	assert.False(t, CanAlterUser(1, models.RoleAdmin, target, nil))
}

func TestCanAlterUserAdminDeletionForbidden(t *testing.T) {
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	// Even another admin may not delete an admin account
	assert.False(t, CanAlterUser(1, models.RoleAdmin, admin, nil))

	// But an admin may change another admin's role
	newRole := models.RoleEquipmentManager
	assert.True(t, CanAlterUser(1, models.RoleAdmin, admin, &newRole))
}

func TestCanAlterUserManagerLimits(t *testing.T) {
	assistant := &models.User{ID: 3, Role: models.RoleEquipmentAssistant}
	reporter := &models.User{ID: 4, Role: models.RoleReporter}
	manager := &models.User{ID: 5, Role: models.RoleEquipmentManager}
	admin := &models.User{ID: 6, Role: models.RoleAdmin}

	toAssistant := models.RoleEquipmentAssistant
	toManager := models.RoleEquipmentManager
	toAdmin := models.RoleAdmin

	// Managers manage assistants and reporters
	assert.True(t, CanAlterUser(1, models.RoleEquipmentManager, reporter, &toAssistant))
	assert.True(t, CanAlterUser(1, models.RoleEquipmentManager, assistant, nil))

	// But never peers or admins
	assert.False(t, CanAlterUser(1, models.RoleEquipmentManager, manager, nil))
	assert.False(t, CanAlterUser(1, models.RoleEquipmentManager, admin, &toAssistant))

	// And never promote into the privileged roles
	assert.False(t, CanAlterUser(1, models.RoleEquipmentManager, reporter, &toManager))
	assert.False(t, CanAlterUser(1, models.RoleEquipmentManager, reporter, &toAdmin))
}

func TestCanAlterUserLowerRolesNever(t *testing.T) {
	reporter := &models.User{ID: 4, Role: models.RoleReporter}
	newRole := models.RoleReporter

	assert.False(t, CanAlterUser(1, models.RoleEquipmentAssistant, reporter, &newRole))
	assert.False(t, CanAlterUser(1, models.RoleReporter, reporter, nil))
}
