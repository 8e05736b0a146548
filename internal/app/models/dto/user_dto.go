package dto

// CreateUserRequest is the payload for admin/manager user creation
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=32" example:"malee.k"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100" example:"Malee K."`
	Branch      string `json:"branch" binding:"required" example:"Library"`
	Role        string `json:"role" binding:"required,oneof=ADMIN EQUIPMENT_MANAGER EQUIPMENT_ASSISTANT REPORTER" example:"EQUIPMENT_ASSISTANT"`
}

// ChangeRoleRequest is the payload for a role change
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN EQUIPMENT_MANAGER EQUIPMENT_ASSISTANT REPORTER" example:"EQUIPMENT_ASSISTANT"`
}
