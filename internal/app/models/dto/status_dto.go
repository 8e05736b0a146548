package dto

// CreateStatusRequest is the payload for adding a custom taxonomy entry
type CreateStatusRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Waiting for parts"`
	Description string `json:"description" binding:"omitempty,max=500" example:"Spare part ordered, ticket parked"`
	Color       string `json:"color" binding:"required" example:"#5bc0de"`
}

// UpdateStatusRequest is the payload for editing a custom taxonomy entry
type UpdateStatusRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Waiting for parts"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Color       string `json:"color" binding:"required" example:"#5bc0de"`
}
