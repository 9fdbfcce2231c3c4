package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
)

type RecipeRepository struct {
	BaseRepository
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *RecipeRepository) Create(recipe *model.Recipe) error {
	return r.db.Create(recipe).Error
}

func (r *RecipeRepository) GetByID(id string) (*model.Recipe, error) {
	var recipe model.Recipe
	q := r.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	found, err := r.firstOrNil(q, &recipe, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) Update(recipe *model.Recipe) error {
	return r.db.Save(recipe).Error
}

// ReplaceIngredients swaps a recipe's ingredient rows in one transaction.
func (r *RecipeRepository) ReplaceIngredients(recipeID string, ingredients []model.Ingredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return nil
		}
		return tx.Create(&ingredients).Error
	})
}

func (r *RecipeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.CookbookRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
}

func (r *RecipeRepository) List(query dto.ListRecipesQuery, offset, limit int) ([]model.Recipe, int64, error) {
	q := r.db.Model(&model.Recipe{})

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if len(query.Cuisines) > 0 {
		q = q.Where("cuisine IN ?", query.Cuisines)
	}
	if len(query.Difficulties) > 0 {
		q = q.Where("difficulty IN ?", query.Difficulties)
	}
	if query.MaxPrepTime > 0 {
		q = q.Where("prep_time_minutes <= ?", query.MaxPrepTime)
	}
	if query.AuthorID != "" {
		q = q.Where("author_id = ?", query.AuthorID)
	}
	if query.MinRating > 0 {
		q = q.Where("average_rating >= ?", query.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(sortClause(query)).Offset(offset).Limit(limit).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	var recipes []model.Recipe
	err := q.Find(&recipes).Error
	return recipes, total, err
}

func sortClause(query dto.ListRecipesQuery) string {
	column := "created_at"
	switch query.SortBy {
	case "rating":
		column = "average_rating"
	case "prep_time":
		column = "prep_time_minutes"
	case "title":
		column = "title"
	}

	direction := "ASC"
	if query.SortDescending || query.SortBy == "" {
		direction = "DESC"
	}

	return column + " " + direction
}

func (r *RecipeRepository) SetImageURL(id, url string) error {
	return r.db.Model(&model.Recipe{}).Where("id = ?", id).
		Update("image_url", url).Error
}

// ==================== RATINGS ====================

// UpsertRating stores the user's score (insert or overwrite) and refreshes
// the recipe's denormalized average inside one transaction.
func (r *RecipeRepository) UpsertRating(rating *model.Rating) (float64, int, error) {
	var average float64
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(rating).Error
		if err != nil {
			return err
		}

		row := tx.Model(&model.Rating{}).
			Select("COALESCE(AVG(score), 0), COUNT(*)").
			Where("recipe_id = ?", rating.RecipeID).
			Row()
		if err := row.Scan(&average, &count); err != nil {
			return err
		}

		return tx.Model(&model.Recipe{}).Where("id = ?", rating.RecipeID).
			Updates(map[string]interface{}{
				"average_rating": average,
				"rating_count":   count,
			}).Error
	})

	return average, int(count), err
}
