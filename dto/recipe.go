package dto

import "time"

// ==================== RECIPE REQUEST DTOs ====================

type CreateRecipeRequest struct {
	Title           string              `json:"title" validate:"required,min=3,max=120" example:"Beef Pho"`
	Description     string              `json:"description" validate:"max=2000"`
	Cuisine         string              `json:"cuisine" validate:"required,min=2,max=50" example:"vietnamese"`
	Difficulty      string              `json:"difficulty" validate:"required,oneof=easy medium hard" example:"medium"`
	PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"required,gte=1,lte=1440"`
	CookTimeMinutes int                 `json:"cook_time_minutes" validate:"gte=0,lte=2880"`
	Servings        int                 `json:"servings" validate:"required,gte=1,lte=100"`
	Steps           []string            `json:"steps" validate:"required,min=1,max=50,dive,min=1,max=2000"`
	Ingredients     []IngredientRequest `json:"ingredients" validate:"required,min=1,max=100,dive"`
}

func (r CreateRecipeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type IngredientRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120" example:"rice noodles"`
	Quantity float64 `json:"quantity" validate:"gte=0" example:"200"`
	Unit     string  `json:"unit" validate:"max=30" example:"g"`
}

type UpdateRecipeRequest struct {
	Title           *string             `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Description     *string             `json:"description,omitempty" validate:"omitempty,max=2000"`
	Cuisine         *string             `json:"cuisine,omitempty" validate:"omitempty,min=2,max=50"`
	Difficulty      *string             `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	PrepTimeMinutes *int                `json:"prep_time_minutes,omitempty" validate:"omitempty,gte=1,lte=1440"`
	CookTimeMinutes *int                `json:"cook_time_minutes,omitempty" validate:"omitempty,gte=0,lte=2880"`
	Servings        *int                `json:"servings,omitempty" validate:"omitempty,gte=1,lte=100"`
	Steps           []string            `json:"steps,omitempty" validate:"omitempty,min=1,max=50,dive,min=1,max=2000"`
	Ingredients     []IngredientRequest `json:"ingredients,omitempty" validate:"omitempty,min=1,max=100,dive"`
}

func (r UpdateRecipeRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ListRecipesQuery is the filter schema for the recipe listing. Repeated
// cuisine/difficulty keys in the query string become slice entries.
type ListRecipesQuery struct {
	Search         string   `query:"search" validate:"max=120"`
	Cuisines       []string `query:"cuisine" validate:"max=10,dive,min=2,max=50"`
	Difficulties   []string `query:"difficulty" validate:"max=3,dive,oneof=easy medium hard"`
	MaxPrepTime    int      `query:"max_prep_time" validate:"gte=0,lte=1440"`
	AuthorID       string   `query:"author_id" validate:"omitempty,uuid4"`
	MinRating      float64  `query:"min_rating" validate:"gte=0,lte=5"`
	Page           int      `query:"page" validate:"gte=0"`
	PerPage        int      `query:"per_page" validate:"gte=0,lte=100"`
	SortBy         string   `query:"sort_by" validate:"omitempty,oneof=created_at rating prep_time title"`
	SortDescending bool     `query:"sort_desc"`
}

func (q ListRecipesQuery) Validate() error {
	return GetValidator().Struct(q)
}

func (q ListRecipesQuery) PageOrDefault() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

func (q ListRecipesQuery) PerPageOrDefault() int {
	if q.PerPage < 1 {
		return 20
	}
	return q.PerPage
}

type RecipeIDParam struct {
	ID string `params:"id" validate:"required,uuid4"`
}

func (p RecipeIDParam) Validate() error {
	return GetValidator().Struct(p)
}

type RateRecipeRequest struct {
	Score int `json:"score" validate:"required,gte=1,lte=5" example:"4"`
}

func (r RateRecipeRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== RECIPE RESPONSE DTOs ====================

type RecipeResponse struct {
	ID              string               `json:"id"`
	AuthorID        string               `json:"author_id"`
	AuthorUsername  string               `json:"author_username,omitempty"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Cuisine         string               `json:"cuisine"`
	Difficulty      string               `json:"difficulty"`
	PrepTimeMinutes int                  `json:"prep_time_minutes"`
	CookTimeMinutes int                  `json:"cook_time_minutes"`
	Servings        int                  `json:"servings"`
	Steps           []string             `json:"steps"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	ImageURL        string               `json:"image_url,omitempty"`
	AverageRating   float64              `json:"average_rating"`
	RatingCount     int                  `json:"rating_count"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type IngredientResponse struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

type RatingResponse struct {
	RecipeID      string  `json:"recipe_id"`
	Score         int     `json:"score"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
