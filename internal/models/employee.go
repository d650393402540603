package models

import "time"

// Employee is a person's presence in a company's organization. It does not
// grant platform access; that is what Membership is for.
type Employee struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CompanyID uint64    `gorm:"not null;index" json:"companyId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	Position  *string   `gorm:"type:varchar(255)" json:"position"`
	Status    *string   `gorm:"type:varchar(50)" json:"status"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
