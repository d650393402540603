package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormResultRepository is a GORM implementation of ResultRepository
type GormResultRepository struct {
	gormScopedStore[models.Result]
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &GormResultRepository{gormScopedStore[models.Result]{
		db: db,
		read: func(db *gorm.DB) *gorm.DB {
			return db.Preload("SubResults", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC")
			})
		},
	}}
}

// Create inserts the result and then its sub-results in one transaction.
// Sub-results are numbered by their position in result.SubResults.
func (r *GormResultRepository) Create(result *models.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SubResults").Create(result).Error; err != nil {
			return err
		}
		if result.SubResults == nil {
			result.SubResults = []models.SubResult{}
		}
		return insertSubResults(tx, result.ID, result.SubResults)
	})
}

// UpdateWithSubResults writes updates and optionally replaces the sub-results
func (r *GormResultRepository) UpdateWithSubResults(scope Scope, id uint64, updates map[string]interface{}, subResults []models.SubResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateRow[models.Result](tx, scope, id, updates); err != nil {
			return err
		}
		if subResults == nil {
			return nil
		}

		exists, err := rowExists[models.Result](tx, scope, id)
		if err != nil || !exists {
			return err
		}

		if err := tx.Where("result_id = ?", id).Delete(&models.SubResult{}).Error; err != nil {
			return err
		}
		return insertSubResults(tx, id, subResults)
	})
}

// Delete removes the sub-results and then the result
func (r *GormResultRepository) Delete(scope Scope, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists[models.Result](tx, scope, id)
		if err != nil || !exists {
			return err
		}

		if err := tx.Where("result_id = ?", id).Delete(&models.SubResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Result{}, id).Error
	})
}

func insertSubResults(tx *gorm.DB, resultID uint64, subResults []models.SubResult) error {
	if len(subResults) == 0 {
		return nil
	}
	for i := range subResults {
		subResults[i].ID = 0
		subResults[i].ResultID = resultID
		subResults[i].Order = i
	}
	return tx.Create(&subResults).Error
}
