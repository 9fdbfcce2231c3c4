package repositories

import (
	"gorm.io/gorm"

	"github.com/jaikeex/cookhound-api/model"
)

type ShoppingListRepository struct {
	BaseRepository
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{BaseRepository: NewBaseRepository(db)}
}

// GetOrCreate returns the user's list, creating the empty row on first use.
func (r *ShoppingListRepository) GetOrCreate(userID, newID string) (*model.ShoppingList, error) {
	var list model.ShoppingList
	q := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	found, err := r.firstOrNil(q, &list, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if !found {
		list = model.ShoppingList{ID: newID, UserID: userID}
		if err := r.db.Create(&list).Error; err != nil {
			return nil, err
		}
	}
	return &list, nil
}

func (r *ShoppingListRepository) AddItems(items []model.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

func (r *ShoppingListRepository) NextPosition(listID string) (int, error) {
	var max int
	err := r.db.Model(&model.ShoppingListItem{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *ShoppingListRepository) GetItem(listID, itemID string) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	found, err := r.firstOrNil(r.db, &item, "id = ? AND list_id = ?", itemID, listID)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingListRepository) UpdateItem(item *model.ShoppingListItem) error {
	return r.db.Save(item).Error
}

func (r *ShoppingListRepository) RemoveItem(listID, itemID string) (int64, error) {
	result := r.db.Where("id = ? AND list_id = ?", itemID, listID).
		Delete(&model.ShoppingListItem{})
	return result.RowsAffected, result.Error
}

func (r *ShoppingListRepository) Clear(listID string) error {
	return r.db.Where("list_id = ?", listID).Delete(&model.ShoppingListItem{}).Error
}
