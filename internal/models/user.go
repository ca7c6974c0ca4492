package models

import "time"

type User struct {
	ID           uint      `gorm:"primarykey" json:"user_id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       *uint     `json:"role_id,omitempty"`
	IsPending    bool      `gorm:"not null;default:true" json:"is_pending"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Role *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
