package dto

import "time"

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func (r UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UsernameCheckQuery struct {
	Username string `query:"username" validate:"required,min=3,max=30,alphanum"`
}

func (q UsernameCheckQuery) Validate() error {
	return GetValidator().Struct(q)
}

type UserProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	RecipeCount int       `json:"recipe_count"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
}

type UsernameCheckResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// ==================== ADMIN DTOs ====================

type AdminListUsersQuery struct {
	Search  string `query:"search" validate:"max=120"`
	Page    int    `query:"page" validate:"gte=0"`
	PerPage int    `query:"per_page" validate:"gte=0,lte=100"`
}

func (q AdminListUsersQuery) Validate() error {
	return GetValidator().Struct(q)
}

type AdminUserListResponse struct {
	Users   []UserProfileResponse `json:"users"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}
