package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormInstructionRepository is a GORM implementation of InstructionRepository
type GormInstructionRepository struct {
	gormScopedStore[models.Instruction]
}

// NewInstructionRepository creates a new InstructionRepository
func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &GormInstructionRepository{gormScopedStore[models.Instruction]{
		db: db,
		read: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Access", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
		},
	}}
}

// Create inserts the instruction and its access list in one transaction
func (r *GormInstructionRepository) Create(instruction *models.Instruction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Access").Create(instruction).Error; err != nil {
			return err
		}
		if instruction.Access == nil {
			instruction.Access = []models.InstructionAccess{}
		}
		return insertAccess(tx, instruction.ID, instruction.Access)
	})
}

// UpdateWithAccess writes updates and optionally replaces the access list
func (r *GormInstructionRepository) UpdateWithAccess(scope Scope, id uint64, updates map[string]interface{}, access []models.InstructionAccess) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateRow[models.Instruction](tx, scope, id, updates); err != nil {
			return err
		}
		if access == nil {
			return nil
		}

		exists, err := rowExists[models.Instruction](tx, scope, id)
		if err != nil || !exists {
			return err
		}

		if err := tx.Where("instruction_id = ?", id).Delete(&models.InstructionAccess{}).Error; err != nil {
			return err
		}
		return insertAccess(tx, id, access)
	})
}

// Delete removes the access list and then the instruction
func (r *GormInstructionRepository) Delete(scope Scope, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists[models.Instruction](tx, scope, id)
		if err != nil || !exists {
			return err
		}

		if err := tx.Where("instruction_id = ?", id).Delete(&models.InstructionAccess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Instruction{}, id).Error
	})
}

func insertAccess(tx *gorm.DB, instructionID uint64, access []models.InstructionAccess) error {
	if len(access) == 0 {
		return nil
	}
	for i := range access {
		access[i].ID = 0
		access[i].InstructionID = instructionID
	}
	return tx.Create(&access).Error
}
