package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"ftcportal/internal/database"
	"ftcportal/internal/models"
	"ftcportal/internal/repository"
	"ftcportal/internal/scout"
)

// Dialer opens a database connection for a portal URL.
type Dialer func(dbURL string) (*gorm.DB, error)

// ProvisioningService owns the three entry points into an authenticated
// session: Login, RequestJoin and CreateTeam. It holds no session state
// itself; each call either returns a fresh Session or nothing.
type ProvisioningService struct {
	registry *scout.Client
	dial     Dialer
}

// NewProvisioningService creates a ProvisioningService. registry may be nil,
// in which case team verification degrades to "cannot verify".
func NewProvisioningService(registry *scout.Client) *ProvisioningService {
	return &ProvisioningService{
		registry: registry,
		dial:     database.Connect,
	}
}

// Login authenticates username against the database at dbURL and returns an
// established session. A pending account with correct credentials yields
// ErrPendingApproval and releases the connection; an unknown username and a
// wrong password both yield ErrInvalidCredentials.
func (s *ProvisioningService) Login(dbURL, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if strings.TrimSpace(dbURL) == "" {
		return nil, fmt.Errorf("%w: database URL is required", ErrInvalidInput)
	}

	db, err := s.dial(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	users := repository.NewUserRepository(db)
	user, err := users.FindByUsername(username)
	if err != nil {
		database.Close(db)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		database.Close(db)
		return nil, ErrInvalidCredentials
	}

	if user.IsPending {
		database.Close(db)
		return nil, ErrPendingApproval
	}

	team, err := repository.NewTeamRepository(db).Get()
	if err != nil {
		database.Close(db)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMissing
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	log.Info("login successful", "user", user.Username, "team", team.Number)
	return newSession(db, *user, *team), nil
}

// RequestJoin creates a pending account on the team database at dbURL. It
// never establishes a session; an admin has to approve the account before it
// can log in.
func (s *ProvisioningService) RequestJoin(dbURL, username, password string) error {
	username = strings.TrimSpace(username)
	dbURL = strings.TrimSpace(dbURL)
	if username == "" || password == "" || dbURL == "" {
		return fmt.Errorf("%w: username, password and database URL are required", ErrInvalidInput)
	}
	if err := database.ValidateURL(dbURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	db, err := s.dial(dbURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer database.Close(db)

	users := repository.NewUserRepository(db)
	if _, err := users.FindByUsername(username); err == nil {
		return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsPending:    true,
		IsAdmin:      false,
	}
	if err := users.Create(user); err != nil {
		return fmt.Errorf("failed to submit join request: %w", err)
	}

	log.Info("join request submitted", "user", username)
	return nil
}

// CreateTeamInput holds everything needed to bootstrap a team database.
// AllowUnverified and AllowReset are the caller's explicit confirmations for
// the two gates: proceeding with a team number the registry does not know,
// and wiping a database that already holds a team.
type CreateTeamInput struct {
	DatabaseURL     string
	TeamNumber      string
	TeamName        string
	TeamPassword    string
	AdminUsername   string
	AdminPassword   string
	AllowUnverified bool
	AllowReset      bool
}

// CreateTeam provisions a fresh team database: resets the schema, seeds the
// roles, inserts the team row and the admin account, all in one transaction,
// and returns a session authenticated as the new admin. On ErrTeamUnverified
// or ErrTeamExists nothing has been written; the caller may confirm and retry
// with the corresponding flag set.
func (s *ProvisioningService) CreateTeam(ctx context.Context, in CreateTeamInput) (*Session, error) {
	in.DatabaseURL = strings.TrimSpace(in.DatabaseURL)
	in.TeamNumber = strings.TrimSpace(in.TeamNumber)
	in.TeamName = strings.TrimSpace(in.TeamName)
	in.AdminUsername = strings.TrimSpace(in.AdminUsername)
	if in.DatabaseURL == "" || in.TeamNumber == "" || in.TeamName == "" ||
		in.TeamPassword == "" || in.AdminUsername == "" || in.AdminPassword == "" {
		return nil, fmt.Errorf("%w: all fields are required to create a team", ErrInvalidInput)
	}
	if err := database.ValidateURL(in.DatabaseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	number, err := strconv.Atoi(in.TeamNumber)
	if err != nil || number <= 0 {
		return nil, fmt.Errorf("%w: team number must be a positive integer", ErrInvalidInput)
	}

	switch s.verifyTeam(ctx, number) {
	case scout.TeamUnknown:
		if !in.AllowUnverified {
			return nil, fmt.Errorf("%w: team %d", ErrTeamUnverified, number)
		}
		log.Warn("creating team the registry does not know", "team", number)
	case scout.VerifyUnavailable:
		log.Warn("could not verify team with registry, proceeding", "team", number)
	}

	db, err := s.dial(in.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	exists, err := repository.NewTeamRepository(db).Exists()
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	if exists && !in.AllowReset {
		database.Close(db)
		return nil, ErrTeamExists
	}

	teamHash, err := HashPassword(in.TeamPassword)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	adminHash, err := HashPassword(in.AdminPassword)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	team := models.Team{Number: number, Name: in.TeamName, PasswordHash: teamHash}
	admin := models.User{
		Username:     in.AdminUsername,
		PasswordHash: adminHash,
		IsPending:    false,
		IsAdmin:      true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := database.ResetSteps(tx); err != nil {
			return err
		}
		if err := tx.Create(&team).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		var adminRole models.Role
		if err := tx.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
			return fmt.Errorf("failed to look up admin role: %w", err)
		}
		admin.RoleID = &adminRole.ID
		if err := tx.
			Select("Username", "PasswordHash", "RoleID", "IsPending", "IsAdmin", "CreatedAt").
			Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
		return nil
	})
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	log.Info("team created", "team", number, "name", in.TeamName, "admin", admin.Username)
	return newSession(db, admin, team), nil
}

func (s *ProvisioningService) verifyTeam(ctx context.Context, number int) scout.Verification {
	if s.registry == nil {
		return scout.VerifyUnavailable
	}
	return s.registry.VerifyTeam(ctx, number)
}
