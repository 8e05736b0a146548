package auth

import (
	"github.com/kittipos/equiptrack/internal/app/models"
)

// Operation identifies a mutating or privileged action checked against the
// permission table. Resource-state conditions (ownership, current ticket
// status, target account's role) are layered on top by the services.
type Operation string

const (
	OpTicketCreate         Operation = "ticket.create"
	OpTicketView           Operation = "ticket.view"
	OpTicketAssign         Operation = "ticket.assign"
	OpTicketTransition     Operation = "ticket.transition"
	OpTicketBulkTransition Operation = "ticket.bulk_transition"
	OpTicketDelete         Operation = "ticket.delete"
	OpTicketExport         Operation = "ticket.export"

	OpEquipmentCreate    Operation = "equipment.create"
	OpEquipmentUpdate    Operation = "equipment.update"
	OpEquipmentDelete    Operation = "equipment.delete"
	OpEquipmentSetStatus Operation = "equipment.set_status"

	OpStatusCreate Operation = "status.create"
	OpStatusUpdate Operation = "status.update"
	OpStatusDelete Operation = "status.delete"

	OpUserCreate     Operation = "user.create"
	OpUserList       Operation = "user.list"
	OpUserChangeRole Operation = "user.change_role"
	OpUserDelete     Operation = "user.delete"
)

// permissions is the single declarative role × operation table consulted
// before every mutation. Anything not listed here is denied.
var permissions = map[models.Role]map[Operation]bool{
	models.RoleAdmin: {
		OpTicketCreate:         true,
		OpTicketView:           true,
		OpTicketAssign:         true,
		OpTicketTransition:     true,
		OpTicketBulkTransition: true,
		OpTicketDelete:         true,
		OpTicketExport:         true,
		OpEquipmentCreate:      true,
		OpEquipmentUpdate:      true,
		OpEquipmentDelete:      true,
		OpEquipmentSetStatus:   true,
		OpStatusCreate:         true,
		OpStatusUpdate:         true,
		OpStatusDelete:         true,
		OpUserCreate:           true,
		OpUserList:             true,
		OpUserChangeRole:       true,
		OpUserDelete:           true,
	},
	models.RoleEquipmentManager: {
		OpTicketCreate:         true,
		OpTicketView:           true,
		OpTicketAssign:         true,
		OpTicketTransition:     true,
		OpTicketBulkTransition: true,
		OpTicketDelete:         true,
		OpTicketExport:         true,
		OpEquipmentCreate:      true,
		OpEquipmentUpdate:      true,
		OpEquipmentDelete:      true,
		OpEquipmentSetStatus:   true,
		OpStatusCreate:         true,
		OpStatusUpdate:         true,
		OpStatusDelete:         true,
		OpUserCreate:           true,
		OpUserList:             true,
		OpUserChangeRole:       true,
		OpUserDelete:           true,
	},
	models.RoleEquipmentAssistant: {
		OpTicketCreate:     true,
		OpTicketView:       true,
		OpTicketAssign:     true,
		OpTicketTransition: true,
	},
	models.RoleReporter: {
		OpTicketCreate: true,
		OpTicketView:   true,
	},
}

// CanPerform is the pure permission check: role × operation → bool.
func CanPerform(role models.Role, op Operation) bool {
	ops, ok := permissions[role]
	if !ok {
		return false
	}
	return ops[op]
}

// CanAlterUser applies the account-management rules that depend on both
// sides of the operation. The caller's operation-level permission must
// already have been checked via CanPerform.
//
//   - Nobody changes their own role or deletes themselves.
//   - Admin accounts are never deleted, and only admins touch other accounts
//     without restriction.
//   - Managers may only manage assistant and reporter accounts, and may not
//     promote anyone to admin or manager.
func CanAlterUser(callerID int64, callerRole models.Role, target *models.User, newRole *models.Role) bool {
	if callerID == target.ID {
		return false
	}

	switch callerRole {
	case models.RoleAdmin:
		if newRole == nil && target.Role == models.RoleAdmin {
			// Deletion of admin accounts is forbidden for everyone
			return false
		}
		return true
	case models.RoleEquipmentManager:
		if target.Role == models.RoleAdmin || target.Role == models.RoleEquipmentManager {
			return false
		}
		if newRole != nil && ((*newRole) == models.RoleAdmin || (*newRole) == models.RoleEquipmentManager) {
			return false
		}
		return true
	default:
		return false
	}
}
