package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormOrgNodeRepository is a GORM implementation of OrgNodeRepository
type GormOrgNodeRepository struct {
	gormScopedStore[models.OrgNode]
}

// NewOrgNodeRepository creates a new OrgNodeRepository
func NewOrgNodeRepository(db *gorm.DB) OrgNodeRepository {
	return &GormOrgNodeRepository{gormScopedStore[models.OrgNode]{db: db}}
}

// ListByKind lists the nodes of one kind
func (r *GormOrgNodeRepository) ListByKind(scope Scope, kind models.OrgNodeKind) ([]models.OrgNode, error) {
	nodes := make([]models.OrgNode, 0)
	if err := r.db.Scopes(scope).
		Where("kind = ?", kind).
		Order("id ASC").
		Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

// DeleteDivision deletes a division's departments and then the division itself
func (r *GormOrgNodeRepository) DeleteDivision(scope Scope, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scope).
			Where("kind = ? AND division_id = ?", models.OrgNodeDepartment, id).
			Delete(&models.OrgNode{}).Error; err != nil {
			return err
		}

		return tx.Scopes(scope).
			Where("kind = ? AND id = ?", models.OrgNodeDivision, id).
			Delete(&models.OrgNode{}).Error
	})
}
