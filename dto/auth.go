package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" example:"johndoe"`
	Password string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func (r RefreshTokenRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"OldPass123!"`
	NewPassword     string `json:"new_password" validate:"required,strong_password" example:"NewPass123!"`
}

func (c ChangePasswordRequest) Validate() error {
	return GetValidator().Struct(c)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
}

func (f ForgotPasswordRequest) Validate() error {
	return GetValidator().Struct(f)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" example:"user@example.com"`
	Code        string `json:"code" validate:"required,len=6,numeric" example:"123456"`
	NewPassword string `json:"new_password" validate:"required,strong_password" example:"NewPass123!"`
}

func (r ResetPasswordRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterResponse struct {
	UserID  string `json:"user_id" example:"a50b8ff2-6243-4bb1-bbb9-1f25e4a120d3"`
	Message string `json:"message" example:"Registration successful"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in" example:"900"`
}

type LoginResponse struct {
	TokenPair
	User UserInfo `json:"user"`
}

type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
