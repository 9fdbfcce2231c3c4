package dto

import "time"

type CreateCookbookRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100" example:"Weeknight Dinners"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"is_public"`
}

func (r CreateCookbookRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateCookbookRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

func (r UpdateCookbookRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CookbookIDParam struct {
	ID string `params:"id" validate:"required,uuid4"`
}

func (p CookbookIDParam) Validate() error {
	return GetValidator().Struct(p)
}

type CookbookRecipeParams struct {
	ID       string `params:"id" validate:"required,uuid4"`
	RecipeID string `params:"recipeId" validate:"required,uuid4"`
}

func (p CookbookRecipeParams) Validate() error {
	return GetValidator().Struct(p)
}

type CookbookResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	RecipeCount int       `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CookbookDetailResponse struct {
	CookbookResponse
	Recipes []RecipeResponse `json:"recipes"`
}

type CookbookListResponse struct {
	Cookbooks []CookbookResponse `json:"cookbooks"`
}
