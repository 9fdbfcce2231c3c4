package model

import (
	"time"

	"github.com/bytedance/sonic"
)

type Recipe struct {
	ID              string `gorm:"primaryKey;type:text;not null"`
	AuthorID        string `gorm:"not null;index"`
	Title           string `gorm:"not null;size:120"`
	Description     string `gorm:"type:text"`
	Cuisine         string `gorm:"not null;index;size:50"`
	Difficulty      string `gorm:"not null;index;size:10"`
	PrepTimeMinutes int    `gorm:"not null"`
	CookTimeMinutes int    `gorm:"not null;default:0"`
	Servings        int    `gorm:"not null"`
	Steps           string `gorm:"type:text;not null"` // JSON array of step texts
	ImageURL        string `gorm:"size:500"`
	AverageRating   float64 `gorm:"not null;default:0;index"`
	RatingCount     int     `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) SetSteps(steps []string) error {
	raw, err := sonic.Marshal(steps)
	if err != nil {
		return err
	}
	r.Steps = string(raw)
	return nil
}

func (r *Recipe) GetSteps() ([]string, error) {
	var steps []string
	if err := sonic.Unmarshal([]byte(r.Steps), &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

type Ingredient struct {
	ID       string  `gorm:"primaryKey;type:text;not null"`
	RecipeID string  `gorm:"not null;index"`
	Position int     `gorm:"not null"`
	Name     string  `gorm:"not null;size:120"`
	Quantity float64 `gorm:"not null;default:0"`
	Unit     string  `gorm:"size:30"`
}

// Rating is one user's score for one recipe; the unique index makes a second
// submission an upsert, never a duplicate row.
type Rating struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	RecipeID  string `gorm:"not null;uniqueIndex:idx_rating_recipe_user"`
	UserID    string `gorm:"not null;uniqueIndex:idx_rating_recipe_user"`
	Score     int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
