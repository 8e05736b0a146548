package models

import (
	"time"
)

// Role defines the user role type
type Role string

const (
	RoleAdmin              Role = "ADMIN"
	RoleEquipmentManager   Role = "EQUIPMENT_MANAGER"
	RoleEquipmentAssistant Role = "EQUIPMENT_ASSISTANT"
	RoleReporter           Role = "REPORTER"
)

// AllRoles lists every valid role; unknown roles are rejected at write time.
var AllRoles = []Role{RoleAdmin, RoleEquipmentManager, RoleEquipmentAssistant, RoleReporter}

// Valid reports whether the role is a member of the enumerated set
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role may work on tickets (assign, transition)
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEquipmentManager || r == RoleEquipmentAssistant
}

// IsPrivileged reports whether the role manages equipment, statuses and users
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleEquipmentManager
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`                       // Unique identifier for the user
	Username    string    `json:"username" db:"username" example:"somchai.w"`   // Login name, unique
	Password    string    `json:"-" db:"password"`                              // Hashed password (excluded from JSON)
	DisplayName string    `json:"displayName" db:"display_name" example:"Somchai W."` // Name shown in ticket views
	Role        Role      `json:"role" db:"role" example:"REPORTER"`            // One of ADMIN, EQUIPMENT_MANAGER, EQUIPMENT_ASSISTANT, REPORTER
	Branch      string    `json:"branch" db:"branch" example:"IT"`              // Organizational branch
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
