package dto

import "github.com/kittipos/equiptrack/internal/app/models"

// CreateTicketRequest is the payload for reporting a problem. Sent as
// multipart form data so an optional photo can ride along.
type CreateTicketRequest struct {
	EquipmentCode string `form:"equipmentCode" binding:"required" example:"EQ-0001"`
	Description   string `form:"description" binding:"required" example:"Mouse not working"`
	Category      string `form:"category" binding:"required,oneof=HARDWARE SOFTWARE" example:"HARDWARE"`
	// Confirm acknowledges the similar-ticket warning; without it, creation
	// is answered with the candidate list instead of a new ticket.
	Confirm bool `form:"confirm"`
}

// TransitionRequest is the payload for a status change on a ticket
type TransitionRequest struct {
	Target  string `json:"target" binding:"required" example:"CANNOT_FIX"`
	Comment string `json:"comment" binding:"omitempty,max=1000" example:"No spare parts available"`
	// Confirm is required for the referral transition, which the UI treats
	// as destructive-ish and forces through an explicit confirm step.
	Confirm bool `json:"confirm"`
}

// BulkTransitionRequest moves several referred tickets at once
type BulkTransitionRequest struct {
	TicketIDs []int64 `json:"ticketIds" binding:"required,min=1"`
	Target    string  `json:"target" binding:"required,oneof=DAMAGED RESOLVED" example:"DAMAGED"`
	Comment   string  `json:"comment" binding:"required" example:"Beyond repair"`
}

// SimilarTicketsResponse is returned when open tickets that look like the
// new report already exist and the caller has not confirmed yet
type SimilarTicketsResponse struct {
	Similar []*models.Ticket `json:"similar"`
	Message string           `json:"message" example:"These tickets may already cover this problem; resubmit with confirm=true to proceed"`
}

// TicketFilter captures the list endpoint's query parameters
type TicketFilter struct {
	StatusID    int64  `form:"statusId"`
	Category    string `form:"category" binding:"omitempty,oneof=HARDWARE SOFTWARE"`
	Room        string `form:"room"`
	EquipmentID int64  `form:"equipmentId"`
}
