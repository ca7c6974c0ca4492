package models

import "time"

type Meeting struct {
	ID          uint      `gorm:"primarykey" json:"meeting_id"`
	Date        time.Time `gorm:"column:meeting_date;not null" json:"meeting_date"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Attendance []Attendance `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"-"`
}

// Attendance records whether a user attended a meeting. One row per
// user per meeting.
type Attendance struct {
	ID         uint      `gorm:"primarykey" json:"attendance_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_attendance_user_meeting" json:"user_id"`
	MeetingID  uint      `gorm:"not null;uniqueIndex:idx_attendance_user_meeting" json:"meeting_id"`
	IsPresent  bool      `gorm:"not null" json:"is_present"`
	RecordedAt time.Time `json:"recorded_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
