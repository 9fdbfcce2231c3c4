package dto

import "time"

type AddShoppingItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120" example:"olive oil"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"max=30"`
}

func (r AddShoppingItemRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ShoppingItemParam struct {
	ItemID string `params:"itemId" validate:"required,uuid4"`
}

func (p ShoppingItemParam) Validate() error {
	return GetValidator().Struct(p)
}

type UpdateShoppingItemRequest struct {
	Checked *bool `json:"checked,omitempty"`
}

func (r UpdateShoppingItemRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ShoppingItemResponse struct {
	ID       string  `json:"id"`
	RecipeID string  `json:"recipe_id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Checked  bool    `json:"checked"`
}

type ShoppingListResponse struct {
	Items     []ShoppingItemResponse `json:"items"`
	UpdatedAt time.Time              `json:"updated_at"`
}
