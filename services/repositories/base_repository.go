package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// BaseRepository carries the gorm handle and the lookup helper every
// aggregate repository shares. Embed it and build queries off db directly.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// firstOrNil runs First on the prepared query and reports a missing row as
// found=false. Services decide between NotFound, Conflict and create-on-miss
// from presence, never from gorm's sentinel error.
func (r *BaseRepository) firstOrNil(q *gorm.DB, dest interface{}, conds ...interface{}) (bool, error) {
	err := q.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
