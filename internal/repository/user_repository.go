package repository

import (
	"fmt"

	"gorm.io/gorm"

	"ftcportal/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user. The column list is explicit so the pending and
// admin flags are written as-is instead of falling back to column defaults.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.
		Select("Username", "PasswordHash", "RoleID", "IsPending", "IsAdmin", "CreatedAt").
		Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPending lists users awaiting approval, oldest request first
func (r *GormUserRepository) ListPending() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("is_pending = ?", true).Order("created_at").Find(&users).Error
	return users, err
}

// ListActive lists non-pending users with their roles
func (r *GormUserRepository) ListActive() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Role").Where("is_pending = ?", false).Order("username").Find(&users).Error
	return users, err
}

// CountActive counts non-pending users
func (r *GormUserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_pending = ?", false).Count(&count).Error
	return count, err
}

// Approve clears the pending flag on a pending user
func (r *GormUserRepository) Approve(id uint) error {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND is_pending = ?", id, true).
		Update("is_pending", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePending deletes a user only while still pending
func (r *GormUserRepository) DeletePending(id uint) error {
	res := r.db.Where("id = ? AND is_pending = ?", id, true).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetRole assigns a role to a user
func (r *GormUserRepository) SetRole(id uint, roleID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("role_id", roleID).Error
}

// SetAdmin sets or clears the admin flag
func (r *GormUserRepository) SetAdmin(id uint, isAdmin bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_admin", isAdmin).Error
}

// Remove deletes a user together with their attendance rows and clears their
// creator references on guides and videos, atomically. The cascade is spelled
// out here instead of relying on foreign-key actions so behavior does not
// depend on the driver.
func (r *GormUserRepository) Remove(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		if err := tx.Model(&models.Guide{}).
			Where("created_by_user_id = ?", id).
			Update("created_by_user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear guide references: %w", err)
		}
		if err := tx.Model(&models.GuideVideo{}).
			Where("added_by_user_id = ?", id).
			Update("added_by_user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear video references: %w", err)
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
