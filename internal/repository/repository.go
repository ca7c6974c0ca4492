package repository

import (
	"ftcportal/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user, writing the pending/admin flags exactly as
	// set on the model
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListPending lists users awaiting approval, oldest request first
	ListPending() ([]models.User, error)

	// ListActive lists non-pending users with their roles
	ListActive() ([]models.User, error)

	// CountActive counts non-pending users
	CountActive() (int64, error)

	// Approve clears the pending flag on a pending user
	Approve(id uint) error

	// DeletePending deletes a user only while still pending
	DeletePending(id uint) error

	// SetRole assigns a role to a user
	SetRole(id uint, roleID uint) error

	// SetAdmin sets or clears the admin flag
	SetAdmin(id uint, isAdmin bool) error

	// Remove deletes a user along with their attendance rows and clears
	// their creator references on guides and videos
	Remove(id uint) error
}

// TeamRepository defines the interface for the single team row
type TeamRepository interface {
	// Get returns the team row
	Get() (*models.Team, error)

	// Exists reports whether a team row is present; a database without the
	// table at all counts as no team
	Exists() (bool, error)

	// UpdateName renames the team
	UpdateName(name string) error

	// UpdatePasswordHash replaces the stored team password hash
	UpdatePasswordHash(hash string) error
}

// RoleRepository defines the interface for the seeded role set
type RoleRepository interface {
	// FindByName finds a role by its unique name
	FindByName(name string) (*models.Role, error)

	// List returns all roles ordered by name
	List() ([]models.Role, error)
}

// MeetingRepository defines the interface for meetings and attendance
type MeetingRepository interface {
	// CreateWithAttendance inserts a meeting and its attendance rows in one
	// transaction
	CreateWithAttendance(meeting *models.Meeting, attendance []models.Attendance) error

	// List returns meetings, newest first
	List() ([]models.Meeting, error)
}

// GuideRepository defines the interface for guide topics and their videos
type GuideRepository interface {
	// Create inserts a new guide topic
	Create(guide *models.Guide) error

	// FindByID finds a guide by ID
	FindByID(id uint) (*models.Guide, error)

	// List returns guide topics ordered by name
	List() ([]models.Guide, error)

	// AddVideo attaches a video to a guide
	AddVideo(video *models.GuideVideo) error

	// ListVideos returns a guide's videos in the order they were added
	ListVideos(guideID uint) ([]models.GuideVideo, error)
}
