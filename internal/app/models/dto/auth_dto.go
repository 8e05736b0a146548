package dto

// RegisterRequest is the payload for reporter self-registration
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=32" example:"somchai.w"`
	Password    string `json:"password" binding:"required,min=8" example:"S3cretPass!"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100" example:"Somchai W."`
	Branch      string `json:"branch" binding:"required" example:"IT"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"somchai.w"`
	Password string `json:"password" binding:"required" example:"S3cretPass!"`
}

// RefreshTokenRequest exchanges a refresh token for a fresh pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"7d8f3a1c-..."`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}
