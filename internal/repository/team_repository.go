package repository

import (
	"gorm.io/gorm"

	"ftcportal/internal/models"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Get returns the team row
func (r *GormTeamRepository) Get() (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// Exists reports whether a team row is present. A database that has never
// been bootstrapped has no teams table at all, which counts as no team.
func (r *GormTeamRepository) Exists() (bool, error) {
	if !r.db.Migrator().HasTable(&models.Team{}) {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.Team{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateName renames the team
func (r *GormTeamRepository) UpdateName(name string) error {
	return r.db.Model(&models.Team{}).Where("1 = 1").Update("team_name", name).Error
}

// UpdatePasswordHash replaces the stored team password hash
func (r *GormTeamRepository) UpdatePasswordHash(hash string) error {
	return r.db.Model(&models.Team{}).Where("1 = 1").Update("team_password_hash", hash).Error
}
