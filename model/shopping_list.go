package model

import "time"

// ShoppingList is one-per-user; items reference the recipe they came from
// when added from a recipe's ingredient list.
type ShoppingList struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	UserID    string `gorm:"unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ShoppingListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

type ShoppingListItem struct {
	ID        string  `gorm:"primaryKey;type:text;not null"`
	ListID    string  `gorm:"not null;index"`
	RecipeID  string  `gorm:"index;size:64"`
	Position  int     `gorm:"not null"`
	Name      string  `gorm:"not null;size:120"`
	Quantity  float64 `gorm:"not null;default:0"`
	Unit      string  `gorm:"size:30"`
	Checked   bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
