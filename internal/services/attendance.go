package services

import (
	"fmt"
	"strings"
	"time"

	"ftcportal/internal/database"
	"ftcportal/internal/models"
	"ftcportal/internal/repository"
)

// AttendanceService records meetings and summarizes attendance for the
// active roster.
type AttendanceService struct {
	session  *Session
	users    repository.UserRepository
	meetings repository.MeetingRepository
}

// NewAttendanceService creates an AttendanceService bound to the session.
func NewAttendanceService(session *Session) *AttendanceService {
	return &AttendanceService{
		session:  session,
		users:    repository.NewUserRepository(session.DB()),
		meetings: repository.NewMeetingRepository(session.DB()),
	}
}

// CreateMeeting records a meeting and one attendance row per active user:
// present for the IDs in presentUserIDs, absent for everyone else.
func (s *AttendanceService) CreateMeeting(title, description string, presentUserIDs []uint) (*models.Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: meeting title cannot be empty", ErrInvalidInput)
	}

	active, err := s.users.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	present := make(map[uint]bool, len(presentUserIDs))
	for _, id := range presentUserIDs {
		present[id] = true
	}

	now := time.Now()
	meeting := &models.Meeting{
		Date:        now,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	attendance := make([]models.Attendance, 0, len(active))
	for _, user := range active {
		attendance = append(attendance, models.Attendance{
			UserID:     user.ID,
			IsPresent:  present[user.ID],
			RecordedAt: now,
		})
	}

	if err := s.meetings.CreateWithAttendance(meeting, attendance); err != nil {
		return nil, err
	}
	return meeting, nil
}

// ListMeetings returns recorded meetings, newest first.
func (s *AttendanceService) ListMeetings() ([]models.Meeting, error) {
	return s.meetings.List()
}

// MemberAttendance is one active user's present/absent totals.
type MemberAttendance struct {
	UserID   uint
	Username string
	Present  int
	Absent   int
}

// Summary returns per-user attendance counts for the active roster, ordered
// by username. Users with no recorded meetings appear with zero counts.
func (s *AttendanceService) Summary() ([]MemberAttendance, error) {
	rows, err := database.Rows(s.session.DB(), `
		SELECT u.id AS user_id,
		       u.username AS username,
		       COALESCE(SUM(CASE WHEN a.is_present THEN 1 ELSE 0 END), 0) AS present,
		       COALESCE(SUM(CASE WHEN NOT a.is_present THEN 1 ELSE 0 END), 0) AS absent
		FROM users u
		LEFT JOIN attendances a ON a.user_id = u.id
		WHERE u.is_pending = ?
		GROUP BY u.id, u.username
		ORDER BY u.username`, false)
	if err != nil {
		return nil, err
	}

	summary := make([]MemberAttendance, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, MemberAttendance{
			UserID:   uint(asInt64(row["user_id"])),
			Username: asString(row["username"]),
			Present:  int(asInt64(row["present"])),
			Absent:   int(asInt64(row["absent"])),
		})
	}
	return summary, nil
}

// ActiveMemberCount counts approved users, for the dashboard.
func (s *AttendanceService) ActiveMemberCount() (int64, error) {
	return s.users.CountActive()
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return ""
}
