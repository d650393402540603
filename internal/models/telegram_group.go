package models

import "time"

// TelegramGroup links a Telegram chat to a company.
type TelegramGroup struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CompanyID uint64    `gorm:"not null;index" json:"companyId"`
	ChatID    int64     `gorm:"uniqueIndex;not null" json:"chatId"`
	Title     *string   `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TelegramMember struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	GroupID  uint64    `gorm:"uniqueIndex:idx_group_user;not null" json:"groupId"`
	UserID   uint64    `gorm:"uniqueIndex:idx_group_user;not null" json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user"`
}
