package models

import (
	"time"
)

// Category defines the reported problem category
type Category string

const (
	CategoryHardware Category = "HARDWARE"
	CategorySoftware Category = "SOFTWARE"
)

// Valid reports whether the category is one of the two enumerated values
func (c Category) Valid() bool {
	return c == CategoryHardware || c == CategorySoftware
}

// Ticket defines the problem report model based on the 'tickets' table.
// Room is a denormalized copy of the equipment's room at creation time.
type Ticket struct {
	ID          int64        `json:"id" db:"id" example:"1"`
	EquipmentID int64        `json:"equipmentId" db:"equipment_id" example:"1"`
	Status      TicketStatus `json:"status" example:"PENDING"` // Mapped from status_id at the repository boundary
	Description string       `json:"description" db:"description" example:"Mouse not working"`
	Category    Category     `json:"category" db:"category" example:"HARDWARE"`
	Comment     string       `json:"comment,omitempty" db:"comment"` // Reason/detail attached at certain transitions
	Room        string       `json:"room" db:"room" example:"LAB-204"`
	ReporterID  int64        `json:"reporterId" db:"reporter_id" example:"3"`
	AssigneeID  *int64       `json:"assigneeId,omitempty" db:"assignee_id"`
	PhotoPath   *string      `json:"photoPath,omitempty" db:"photo_path"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`

	// Joined fields, no db column of their own on 'tickets'
	EquipmentCode string `json:"equipmentCode,omitempty"`
	EquipmentName string `json:"equipmentName,omitempty"`
	ReporterName  string `json:"reporterName,omitempty"`
	ReporterRole  Role   `json:"reporterRole,omitempty"`
	AssigneeName  string `json:"assigneeName,omitempty"`
}
