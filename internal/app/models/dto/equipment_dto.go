package dto

// CreateEquipmentRequest is the payload for registering an inventory item
type CreateEquipmentRequest struct {
	Code   string `json:"code" binding:"required" example:"EQ-0001"`
	Name   string `json:"name" binding:"required,min=2,max=200" example:"Dell OptiPlex 7090"`
	Type   string `json:"type" binding:"required,oneof=COMPUTER OTHER" example:"COMPUTER"`
	Room   string `json:"room" binding:"required" example:"LAB-204"`
	Status string `json:"status" binding:"omitempty,oneof=ACTIVE MAINTENANCE INACTIVE" example:"ACTIVE"`
}

// UpdateEquipmentRequest is the payload for editing an inventory item
type UpdateEquipmentRequest struct {
	Code string `json:"code" binding:"required" example:"EQ-0001"`
	Name string `json:"name" binding:"required,min=2,max=200" example:"Dell OptiPlex 7090"`
	Type string `json:"type" binding:"required,oneof=COMPUTER OTHER" example:"COMPUTER"`
	Room string `json:"room" binding:"required" example:"LAB-204"`
}

// SetEquipmentStatusRequest changes an item's operational state directly.
// Setting ACTIVE is refused while open tickets reference the equipment.
type SetEquipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE MAINTENANCE INACTIVE" example:"ACTIVE"`
}
