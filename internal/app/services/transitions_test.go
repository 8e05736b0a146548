package services

import (
	"errors"
	"testing"

	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedTicket(status models.TicketStatus) *models.Ticket {
	assignee := int64(7)
	return &models.Ticket{
		ID:          1,
		EquipmentID: 10,
		Status:      status,
		AssigneeID:  &assignee,
	}
}

func TestResolveTransitionTableClosure(t *testing.T) {
	all := []models.TicketStatus{
		models.StatusPending, models.StatusInProgress, models.StatusResolved,
		models.StatusCannotFix, models.StatusReferred, models.StatusDamaged,
	}

	allowed := map[[2]models.TicketStatus]bool{
		{models.StatusInProgress, models.StatusResolved}:  true,
		{models.StatusInProgress, models.StatusCannotFix}: true,
		{models.StatusInProgress, models.StatusReferred}:  true,
		{models.StatusCannotFix, models.StatusReferred}:   true,
		{models.StatusReferred, models.StatusDamaged}:     true,
		{models.StatusReferred, models.StatusResolved}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			_, ok := findTransition(from, to)
			assert.Equal(t, allowed[[2]models.TicketStatus{from, to}], ok,
				"transition %s -> %s", from, to)
		}
	}
}

func TestResolveTransitionPendingIsUnadvanceable(t *testing.T) {
	ticket := assignedTicket(models.StatusPending)

	for _, target := range []models.TicketStatus{
		models.StatusInProgress, models.StatusResolved, models.StatusCannotFix,
		models.StatusReferred, models.StatusDamaged,
	} {
		_, err := resolveTransition(ticket, models.RoleAdmin, target, "a comment", true)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "target %s", target)
	}
}

func TestResolveTransitionSurvivesAssigneeDeletion(t *testing.T) {
	// Deleting an assistant account nulls assignee_id on their tickets.
	// Such tickets must remain closable through the normal edges.
	orphaned := func(status models.TicketStatus) *models.Ticket {
		return &models.Ticket{ID: 1, EquipmentID: 10, Status: status}
	}

	tr, err := resolveTransition(orphaned(models.StatusReferred), models.RoleAdmin, models.StatusDamaged, "written off", true)
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentInactive, tr.EquipmentStatus)

	tr, err = resolveTransition(orphaned(models.StatusInProgress), models.RoleEquipmentManager, models.StatusResolved, "", false)
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentActive, tr.EquipmentStatus)

	// The acceptance guard still holds while the ticket is Pending
	_, err = resolveTransition(orphaned(models.StatusPending), models.RoleAdmin, models.StatusResolved, "", false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestResolveTransitionTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []models.TicketStatus{models.StatusResolved, models.StatusDamaged} {
		for _, to := range []models.TicketStatus{
			models.StatusPending, models.StatusInProgress, models.StatusResolved,
			models.StatusCannotFix, models.StatusReferred, models.StatusDamaged,
		} {
			if from == to {
				continue
			}
			_, err := resolveTransition(assignedTicket(from), models.RoleAdmin, to, "reason", true)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestResolveTransitionRoleGating(t *testing.T) {
	tests := []struct {
		name    string
		from    models.TicketStatus
		to      models.TicketStatus
		role    models.Role
		comment string
		confirm bool
		wantErr error
	}{
		{"assistant resolves own work", models.StatusInProgress, models.StatusResolved, models.RoleEquipmentAssistant, "", false, nil},
		{"assistant refers with confirm", models.StatusInProgress, models.StatusReferred, models.RoleEquipmentAssistant, "", true, nil},
		{"assistant escalates cannot-fix", models.StatusCannotFix, models.StatusReferred, models.RoleEquipmentAssistant, "", false, nil},
		{"assistant cannot close referral as damaged", models.StatusReferred, models.StatusDamaged, models.RoleEquipmentAssistant, "broken", false, apperrors.ErrPermissionDenied},
		{"assistant cannot close referral as resolved", models.StatusReferred, models.StatusResolved, models.RoleEquipmentAssistant, "fixed", false, apperrors.ErrPermissionDenied},
		{"manager closes referral as damaged", models.StatusReferred, models.StatusDamaged, models.RoleEquipmentManager, "broken", false, nil},
		{"admin closes referral as resolved", models.StatusReferred, models.StatusResolved, models.RoleAdmin, "fixed", false, nil},
		{"reporter cannot transition at all", models.StatusInProgress, models.StatusResolved, models.RoleReporter, "", false, apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveTransition(assignedTicket(tt.from), tt.role, tt.to, tt.comment, tt.confirm)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResolveTransitionCommentRequirement(t *testing.T) {
	// CannotFix and both Referred exits demand a reason
	_, err := resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.StatusCannotFix, "", false)
	assert.ErrorIs(t, err, apperrors.ErrCommentRequired)

	// Whitespace is not a reason
	_, err = resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.StatusCannotFix, "   \t", false)
	assert.ErrorIs(t, err, apperrors.ErrCommentRequired)

	_, err = resolveTransition(assignedTicket(models.StatusReferred), models.RoleAdmin, models.StatusDamaged, "", false)
	assert.ErrorIs(t, err, apperrors.ErrCommentRequired)

	tr, err := resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.StatusCannotFix, "no spare parts", false)
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentInactive, tr.EquipmentStatus)
}

func TestResolveTransitionConfirmRequirement(t *testing.T) {
	_, err := resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.StatusReferred, "", false)
	assert.ErrorIs(t, err, apperrors.ErrConfirmationNeeded)

	tr, err := resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.StatusReferred, "", true)
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentMaintenance, tr.EquipmentStatus)

	// The CannotFix -> Referred edge needs no confirmation; the operator
	// already confirmed the cannot-fix verdict
	_, err = resolveTransition(assignedTicket(models.StatusCannotFix), models.RoleAdmin, models.StatusReferred, "", false)
	assert.NoError(t, err)
}

func TestResolveTransitionEquipmentSideEffects(t *testing.T) {
	tests := []struct {
		from, to models.TicketStatus
		comment  string
		confirm  bool
		want     models.EquipmentStatus
	}{
		{models.StatusInProgress, models.StatusResolved, "", false, models.EquipmentActive},
		{models.StatusInProgress, models.StatusCannotFix, "dead PSU", false, models.EquipmentInactive},
		{models.StatusInProgress, models.StatusReferred, "", true, models.EquipmentMaintenance},
		{models.StatusCannotFix, models.StatusReferred, "", false, models.EquipmentMaintenance},
		{models.StatusReferred, models.StatusDamaged, "written off", false, models.EquipmentInactive},
		{models.StatusReferred, models.StatusResolved, "repaired externally", false, models.EquipmentActive},
	}

	for _, tt := range tests {
		tr, err := resolveTransition(assignedTicket(tt.from), models.RoleAdmin, tt.to, tt.comment, tt.confirm)
		require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.want, tr.EquipmentStatus, "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionComment(t *testing.T) {
	withComment := assignedTicket(models.StatusCannotFix)
	withComment.Comment = "no spare parts"

	blank := assignedTicket(models.StatusInProgress)

	// Explicit comment wins
	assert.Equal(t, "sent to center", transitionComment(withComment, models.StatusReferred, "sent to center"))

	// Referral without a comment keeps the cannot-fix reason
	assert.Equal(t, "no spare parts", transitionComment(withComment, models.StatusReferred, ""))

	// Referral with nothing at all gets the default text
	assert.Equal(t, ReferralComment, transitionComment(blank, models.StatusReferred, "  "))

	// Other edges keep whatever was there
	assert.Equal(t, "", transitionComment(blank, models.StatusResolved, ""))
}

func TestResolveTransitionUnknownTarget(t *testing.T) {
	_, err := resolveTransition(assignedTicket(models.StatusInProgress), models.RoleAdmin, models.TicketStatus("ARCHIVED"), "", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}
