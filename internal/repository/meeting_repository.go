package repository

import (
	"fmt"

	"gorm.io/gorm"

	"ftcportal/internal/models"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

// CreateWithAttendance inserts the meeting and its attendance rows in one
// transaction so a failed attendance insert never leaves a dangling meeting.
func (r *GormMeetingRepository) CreateWithAttendance(meeting *models.Meeting, attendance []models.Attendance) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		for i := range attendance {
			attendance[i].MeetingID = meeting.ID
		}
		if len(attendance) > 0 {
			if err := tx.Create(&attendance).Error; err != nil {
				return fmt.Errorf("failed to record attendance: %w", err)
			}
		}
		return nil
	})
}

// List returns meetings, newest first
func (r *GormMeetingRepository) List() ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.Order("meeting_date DESC, id DESC").Find(&meetings).Error
	return meetings, err
}
