package services

import (
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/validation"
)

// ReferralComment is the default comment attached when a ticket is handed
// over to the computer center, either one by one or by the batch export.
const ReferralComment = "Referred to the computer center for further repair"

// Transition describes one legal edge of the ticket workflow, including the
// equipment-status side effect applied in the same transaction.
type Transition struct {
	From            models.TicketStatus
	To              models.TicketStatus
	Roles           []models.Role
	CommentRequired bool
	ConfirmRequired bool
	EquipmentStatus models.EquipmentStatus
}

var staffRoles = []models.Role{models.RoleAdmin, models.RoleEquipmentManager, models.RoleEquipmentAssistant}
var privilegedRoles = []models.Role{models.RoleAdmin, models.RoleEquipmentManager}

// transitionTable is the closed transition graph over the six locked
// statuses. Custom taxonomy entries never appear here; they are
// informational only and unreachable through the workflow.
var transitionTable = []Transition{
	{
		From:            models.StatusInProgress,
		To:              models.StatusResolved,
		Roles:           staffRoles,
		EquipmentStatus: models.EquipmentActive,
	},
	{
		From:            models.StatusInProgress,
		To:              models.StatusCannotFix,
		Roles:           staffRoles,
		CommentRequired: true,
		EquipmentStatus: models.EquipmentInactive,
	},
	{
		From:            models.StatusInProgress,
		To:              models.StatusReferred,
		Roles:           staffRoles,
		ConfirmRequired: true,
		EquipmentStatus: models.EquipmentMaintenance,
	},
	{
		From:            models.StatusCannotFix,
		To:              models.StatusReferred,
		Roles:           staffRoles,
		EquipmentStatus: models.EquipmentMaintenance,
	},
	{
		From:            models.StatusReferred,
		To:              models.StatusDamaged,
		Roles:           privilegedRoles,
		CommentRequired: true,
		EquipmentStatus: models.EquipmentInactive,
	},
	{
		From:            models.StatusReferred,
		To:              models.StatusResolved,
		Roles:           privilegedRoles,
		CommentRequired: true,
		EquipmentStatus: models.EquipmentActive,
	},
}

// findTransition looks up the edge for a from/to pair
func findTransition(from, to models.TicketStatus) (*Transition, bool) {
	for i := range transitionTable {
		if transitionTable[i].From == from && transitionTable[i].To == to {
			return &transitionTable[i], true
		}
	}
	return nil, false
}

func (t *Transition) allowsRole(role models.Role) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// resolveTransition validates a requested status change against the
// transition table, the caller's role, and the edge's input requirements.
// The assignment guard (no advancing an unaccepted ticket) only applies
// while the ticket is Pending; the Pending → InProgress assignment step has
// its own path and never goes through this function. Past Pending, a missing
// assignee does not block the workflow: deleting an assistant account nulls
// their assignments, and those tickets must stay closable.
func resolveTransition(ticket *models.Ticket, role models.Role, target models.TicketStatus, comment string, confirmed bool) (*Transition, error) {
	if ticket.Status == models.StatusPending {
		// Nobody advances a ticket until a staff member has accepted it
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"ticket must be assigned before its status can change")
	}

	tr, ok := findTransition(ticket.Status, target)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"no transition from "+string(ticket.Status)+" to "+string(target))
	}

	if !tr.allowsRole(role) {
		return nil, apperrors.NewForbiddenError("your role may not perform this transition")
	}

	if tr.CommentRequired && validation.BlankComment(comment) {
		return nil, apperrors.ErrCommentRequired
	}

	if tr.ConfirmRequired && !confirmed {
		return nil, apperrors.NewCustomError(apperrors.ErrConfirmationNeeded,
			"this transition must be explicitly confirmed")
	}

	return tr, nil
}
