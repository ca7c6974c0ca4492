package models

import "time"

type Guide struct {
	ID              uint      `gorm:"primarykey" json:"guide_id"`
	TopicName       string    `gorm:"type:varchar(255);not null" json:"topic_name"`
	CreatedByUserID *uint     `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	CreatedBy *User        `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"-"`
	Videos    []GuideVideo `gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
}

type GuideVideo struct {
	ID            uint      `gorm:"primarykey" json:"video_id"`
	GuideID       uint      `gorm:"not null;index" json:"guide_id"`
	VideoURL      string    `gorm:"type:varchar(512);not null" json:"video_url"`
	VideoTitle    string    `gorm:"type:varchar(255)" json:"video_title"`
	AddedByUserID *uint     `json:"added_by_user_id,omitempty"`
	AddedAt       time.Time `json:"added_at"`

	// Relations
	AddedBy *User `gorm:"foreignKey:AddedByUserID;constraint:OnDelete:SET NULL" json:"-"`
}
