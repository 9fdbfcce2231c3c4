package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/jaikeex/cookhound-api/model"
)

type CookbookRepository struct {
	BaseRepository
}

func NewCookbookRepository(db *gorm.DB) *CookbookRepository {
	return &CookbookRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *CookbookRepository) Create(cookbook *model.Cookbook) error {
	return r.db.Create(cookbook).Error
}

func (r *CookbookRepository) GetByID(id string) (*model.Cookbook, error) {
	var cookbook model.Cookbook
	found, err := r.firstOrNil(r.db, &cookbook, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &cookbook, nil
}

func (r *CookbookRepository) Update(cookbook *model.Cookbook) error {
	return r.db.Save(cookbook).Error
}

func (r *CookbookRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cookbook_id = ?", id).Delete(&model.CookbookRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cookbook{}, "id = ?", id).Error
	})
}

func (r *CookbookRepository) ListByOwner(ownerID string) ([]model.Cookbook, error) {
	var cookbooks []model.Cookbook
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&cookbooks).Error
	return cookbooks, err
}

func (r *CookbookRepository) RecipeCount(cookbookID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CookbookRecipe{}).Where("cookbook_id = ?", cookbookID).Count(&count).Error
	return count, err
}

func (r *CookbookRepository) AddRecipe(cookbookID, recipeID string) error {
	entry := model.CookbookRecipe{
		ID:         cookbookID + ":" + recipeID,
		CookbookID: cookbookID,
		RecipeID:   recipeID,
		AddedAt:    time.Now(),
	}
	return r.db.Create(&entry).Error
}

func (r *CookbookRepository) RemoveRecipe(cookbookID, recipeID string) (int64, error) {
	result := r.db.Where("cookbook_id = ? AND recipe_id = ?", cookbookID, recipeID).
		Delete(&model.CookbookRecipe{})
	return result.RowsAffected, result.Error
}

func (r *CookbookRepository) ContainsRecipe(cookbookID, recipeID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CookbookRecipe{}).
		Where("cookbook_id = ? AND recipe_id = ?", cookbookID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CookbookRepository) Recipes(cookbookID string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.
		Joins("JOIN cookbook_recipes ON cookbook_recipes.recipe_id = recipes.id").
		Where("cookbook_recipes.cookbook_id = ?", cookbookID).
		Order("cookbook_recipes.added_at DESC").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&recipes).Error
	return recipes, err
}
