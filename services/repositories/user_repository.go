package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/jaikeex/cookhound-api/model"
)

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	found, err := r.firstOrNil(r.db, &user, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	found, err := r.firstOrNil(r.db, &user, "email = ?", email)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	found, err := r.firstOrNil(r.db, &user, "username = ?", username)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) TouchLastLogin(id string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

func (r *UserRepository) CountRecipes(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserRepository) List(search string, offset, limit int) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR username ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// ==================== PASSWORD RESET CODES ====================

func (r *UserRepository) CreateResetCode(code *model.PasswordResetCode) error {
	return r.db.Create(code).Error
}

func (r *UserRepository) GetActiveResetCode(userID, code string) (*model.PasswordResetCode, error) {
	var resetCode model.PasswordResetCode
	q := r.db.Where("user_id = ? AND code = ? AND used_at IS NULL AND expires_at > ?", userID, code, time.Now())
	found, err := r.firstOrNil(q, &resetCode)
	if err != nil || !found {
		return nil, err
	}
	return &resetCode, nil
}

func (r *UserRepository) MarkResetCodeUsed(id string) error {
	now := time.Now()
	return r.db.Model(&model.PasswordResetCode{}).Where("id = ?", id).
		Update("used_at", &now).Error
}
