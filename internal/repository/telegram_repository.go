package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTelegramRepository is a GORM implementation of TelegramRepository
type GormTelegramRepository struct {
	db *gorm.DB
}

// NewTelegramRepository creates a new TelegramRepository
func NewTelegramRepository(db *gorm.DB) TelegramRepository {
	return &GormTelegramRepository{db: db}
}

// ListGroups lists linked chats visible through scope
func (r *GormTelegramRepository) ListGroups(scope Scope) ([]models.TelegramGroup, error) {
	groups := make([]models.TelegramGroup, 0)
	if err := r.db.Scopes(scope).Order("id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindGroup finds a linked chat by ID within scope
func (r *GormTelegramRepository) FindGroup(scope Scope, id uint64) (*models.TelegramGroup, error) {
	var group models.TelegramGroup
	if err := r.db.Scopes(scope).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindGroupByChatID finds a linked chat by its Telegram chat ID
func (r *GormTelegramRepository) FindGroupByChatID(chatID int64) (*models.TelegramGroup, error) {
	var group models.TelegramGroup
	if err := r.db.Where("chat_id = ?", chatID).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// LinkGroup inserts the chat link or, when the chat is already linked,
// moves it to group.CompanyID with the new title.
func (r *GormTelegramRepository) LinkGroup(group *models.TelegramGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.TelegramGroup
		err := tx.Where("chat_id = ?", group.ChatID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(group).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"company_id": group.CompanyID,
			"title":      group.Title,
		}).Error; err != nil {
			return err
		}
		return tx.First(group, existing.ID).Error
	})
}

// AddMember records a user as seen in a group
func (r *GormTelegramRepository) AddMember(groupID, userID uint64) error {
	member := &models.TelegramMember{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Omit("User").Create(member).Error
}

// ListMembers lists the members of a group with their users
func (r *GormTelegramRepository) ListMembers(groupID uint64) ([]models.TelegramMember, error) {
	members := make([]models.TelegramMember, 0)
	if err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
