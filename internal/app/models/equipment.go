package models

import (
	"time"
)

// EquipmentType defines the equipment category
type EquipmentType string

const (
	EquipmentComputer EquipmentType = "COMPUTER"
	EquipmentOther    EquipmentType = "OTHER"
)

// Valid reports whether the type is one of the enumerated values
func (t EquipmentType) Valid() bool {
	return t == EquipmentComputer || t == EquipmentOther
}

// EquipmentStatus defines the operational state of an equipment item
type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "ACTIVE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentInactive    EquipmentStatus = "INACTIVE"
)

// Valid reports whether the status is one of the enumerated values
func (s EquipmentStatus) Valid() bool {
	return s == EquipmentActive || s == EquipmentMaintenance || s == EquipmentInactive
}

// Equipment defines the inventory item model based on the 'equipment' table
type Equipment struct {
	ID        int64           `json:"id" db:"id" example:"1"`
	Code      string          `json:"code" db:"code" example:"EQ-0001"`      // Business identifier, unique, case-normalized
	Name      string          `json:"name" db:"name" example:"Dell OptiPlex 7090"`
	Type      EquipmentType   `json:"type" db:"type" example:"COMPUTER"`
	Room      string          `json:"room" db:"room" example:"LAB-204"`
	Status    EquipmentStatus `json:"status" db:"status" example:"ACTIVE"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
