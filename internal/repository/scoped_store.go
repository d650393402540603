package repository

import (
	"gorm.io/gorm"
)

// gormScopedStore is the GORM implementation of ScopedStore. read, when set,
// is applied to every query that returns rows.
type gormScopedStore[T any] struct {
	db   *gorm.DB
	read func(db *gorm.DB) *gorm.DB
}

func (s *gormScopedStore[T]) reader(db *gorm.DB) *gorm.DB {
	if s.read != nil {
		return s.read(db)
	}
	return db
}

func (s *gormScopedStore[T]) List(scope Scope) ([]T, error) {
	rows := make([]T, 0)
	if err := s.reader(s.db).Scopes(scope).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormScopedStore[T]) Create(row *T) error {
	return s.db.Create(row).Error
}

func (s *gormScopedStore[T]) FindByID(scope Scope, id uint64) (*T, error) {
	var row T
	if err := s.reader(s.db).Scopes(scope).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormScopedStore[T]) Update(scope Scope, id uint64, updates map[string]interface{}) error {
	return updateRow[T](s.db, scope, id, updates)
}

func (s *gormScopedStore[T]) Delete(scope Scope, id uint64) error {
	return s.db.Scopes(scope).Where("id = ?", id).Delete(new(T)).Error
}

func updateRow[T any](db *gorm.DB, scope Scope, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return db.Model(new(T)).Scopes(scope).Where("id = ?", id).Updates(updates).Error
}

func rowExists[T any](db *gorm.DB, scope Scope, id uint64) (bool, error) {
	var count int64
	if err := db.Model(new(T)).Scopes(scope).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
