package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ftcportal/internal/models"
	"ftcportal/internal/repository"
)

// AdminService performs the operations reserved for team admins. Every call
// re-reads the acting user's row first, so a stale or forged client-side
// identity cannot pass the gate.
type AdminService struct {
	session *Session
	users   repository.UserRepository
	teams   repository.TeamRepository
	roles   repository.RoleRepository
}

// NewAdminService creates an AdminService bound to the session.
func NewAdminService(session *Session) *AdminService {
	return &AdminService{
		session: session,
		users:   repository.NewUserRepository(session.DB()),
		teams:   repository.NewTeamRepository(session.DB()),
		roles:   repository.NewRoleRepository(session.DB()),
	}
}

// requireAdmin refreshes the session identity from the database and checks
// the admin flag on the fresh row.
func (s *AdminService) requireAdmin() error {
	fresh, err := s.users.FindByID(s.session.User.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAdmin
		}
		return fmt.Errorf("failed to refresh identity: %w", err)
	}
	s.session.User = *fresh
	if !fresh.IsAdmin {
		return ErrNotAdmin
	}
	return nil
}

// ListPending returns join requests awaiting a decision.
func (s *AdminService) ListPending() ([]models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.users.ListPending()
}

// ListActive returns approved users with their roles.
func (s *AdminService) ListActive() ([]models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.users.ListActive()
}

// ListRoles returns the assignable role set.
func (s *AdminService) ListRoles() ([]models.Role, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.roles.List()
}

// ApproveUser clears the pending flag on a join request.
func (s *AdminService) ApproveUser(userID uint) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.users.Approve(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no pending user %d", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to approve user: %w", err)
	}
	log.Info("user approved", "user_id", userID, "by", s.session.User.Username)
	return nil
}

// RejectUser deletes a join request that is still pending.
func (s *AdminService) RejectUser(userID uint) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.users.DeletePending(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no pending user %d", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to reject user: %w", err)
	}
	log.Info("join request rejected", "user_id", userID, "by", s.session.User.Username)
	return nil
}

// AssignRole sets a user's role by role name.
func (s *AdminService) AssignRole(userID uint, roleName string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	role, err := s.roles.FindByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %q", ErrRoleNotFound, roleName)
		}
		return fmt.Errorf("failed to look up role: %w", err)
	}
	if err := s.users.SetRole(userID, role.ID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// SetAdmin grants or revokes a user's admin flag.
func (s *AdminService) SetAdmin(userID uint, isAdmin bool) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.users.SetAdmin(userID, isAdmin); err != nil {
		return fmt.Errorf("failed to update admin status: %w", err)
	}
	log.Info("admin status changed", "user_id", userID, "is_admin", isAdmin, "by", s.session.User.Username)
	return nil
}

// RemoveUser permanently deletes a user; their attendance goes with them,
// their guide contributions stay with the creator reference cleared.
// Removing your own account is refused regardless of privilege.
func (s *AdminService) RemoveUser(userID uint) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if userID == s.session.User.ID {
		return ErrSelfRemoval
	}
	if err := s.users.Remove(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no user %d", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to remove user: %w", err)
	}
	log.Info("user removed", "user_id", userID, "by", s.session.User.Username)
	return nil
}

// UpdateTeamName renames the team.
func (s *AdminService) UpdateTeamName(name string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
	}
	if err := s.teams.UpdateName(name); err != nil {
		return fmt.Errorf("failed to update team name: %w", err)
	}
	s.session.Team.Name = name
	return nil
}

// UpdateTeamPassword replaces the team password.
func (s *AdminService) UpdateTeamPassword(password string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: team password cannot be empty", ErrInvalidInput)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash team password: %w", err)
	}
	if err := s.teams.UpdatePasswordHash(hash); err != nil {
		return fmt.Errorf("failed to update team password: %w", err)
	}
	return nil
}
