package services

import (
	"gorm.io/gorm"

	"ftcportal/internal/database"
	"ftcportal/internal/models"
)

// Session is the authenticated state of the portal: the one open database
// connection, the identity that logged in, and the team the database
// represents. It is created by a successful Login or CreateTeam and destroyed
// by Close; there is no other way in or out of the authenticated state.
type Session struct {
	db   *gorm.DB
	User models.User
	Team models.Team
}

func newSession(db *gorm.DB, user models.User, team models.Team) *Session {
	return &Session{db: db, User: user, Team: team}
}

// DB exposes the session's connection for read-only queries.
func (s *Session) DB() *gorm.DB {
	return s.db
}

// Close logs out: the connection is released and the identity forgotten.
func (s *Session) Close() {
	database.Close(s.db)
	s.db = nil
	s.User = models.User{}
	s.Team = models.Team{}
}
