package services

import (
	"testing"

	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestTicketEventAddressesReporter(t *testing.T) {
	ticket := &models.Ticket{
		ID:            42,
		Status:        models.StatusReferred,
		Room:          "LAB-204",
		EquipmentCode: "EQ-0001",
		EquipmentName: "Dell OptiPlex 7090",
		ReporterName:  "Somchai J.",
		ReporterRole:  models.RoleReporter,
	}

	ev := ticketEvent("ticket.transitioned", ticket, "Admin A.", "sent to center")

	assert.Equal(t, "ticket.transitioned", ev.Kind)
	assert.Equal(t, int64(42), ev.TicketID)
	assert.Equal(t, "EQ-0001", ev.EquipmentCode)
	assert.Equal(t, "Dell OptiPlex 7090", ev.EquipmentName)
	assert.Equal(t, "LAB-204", ev.Room)
	assert.Equal(t, models.StatusReferred.Label(), ev.Status)
	assert.Equal(t, "Admin A.", ev.Actor)
	assert.Equal(t, "Somchai J.", ev.Recipient)
	assert.Equal(t, string(models.RoleReporter), ev.RecipientRole)
	assert.Equal(t, "sent to center", ev.Message)
	assert.False(t, ev.OccurredAt.IsZero())
}
