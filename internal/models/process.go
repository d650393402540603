package models

import "time"

type Process struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CompanyID   uint64    `gorm:"not null;index" json:"companyId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Status      *string   `gorm:"type:varchar(50)" json:"status"`
	OwnerID     *uint64   `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
