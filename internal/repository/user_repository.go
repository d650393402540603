package repository

import (
	"github.com/yukikurage/company-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByTelegramID returns the user bound to telegramID, inserting
// attrs when no such user exists yet.
func (r *GormUserRepository) FindOrCreateByTelegramID(telegramID int64, attrs models.User) (*models.User, error) {
	attrs.TelegramUserID = &telegramID

	var user models.User
	if err := r.db.Where("telegram_user_id = ?", telegramID).
		Attrs(attrs).
		FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
