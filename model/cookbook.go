package model

import "time"

type Cookbook struct {
	ID          string `gorm:"primaryKey;type:text;not null"`
	OwnerID     string `gorm:"not null;index"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"type:text"`
	IsPublic    bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CookbookRecipe struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	CookbookID string    `gorm:"not null;uniqueIndex:idx_cookbook_recipe"`
	RecipeID   string    `gorm:"not null;uniqueIndex:idx_cookbook_recipe"`
	AddedAt    time.Time `gorm:"not null"`
}
