package models

import "time"

type User struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	TelegramUserID   *int64    `gorm:"uniqueIndex" json:"telegramUserId"`
	TelegramUsername *string   `gorm:"type:varchar(255)" json:"telegramUsername"`
	FirstName        string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName         string    `gorm:"type:varchar(255)" json:"lastName"`
	Email            *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash     *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:UserID" json:"-"`
}
