package database

import (
	"fmt"

	"gorm.io/gorm"

	"ftcportal/internal/models"
)

// dropOrder lists tables leaf-first so foreign keys never dangle mid-reset.
var dropOrder = []any{
	&models.GuideVideo{},
	&models.Guide{},
	&models.Attendance{},
	&models.Meeting{},
	&models.User{},
	&models.Role{},
	&models.Team{},
}

// createOrder lists tables parent-first.
var createOrder = []any{
	&models.Team{},
	&models.Role{},
	&models.User{},
	&models.Meeting{},
	&models.Attendance{},
	&models.Guide{},
	&models.GuideVideo{},
}

// Reset drops and recreates the whole portal schema and re-seeds the role
// set, all inside a single transaction. Either the database ends up fully
// provisioned or it is left exactly as it was.
func Reset(db *gorm.DB) error {
	return db.Transaction(ResetSteps)
}

// ResetSteps runs the ordered schema reset on tx without opening its own
// transaction, so callers can extend the same transaction with further
// bootstrap work.
func ResetSteps(tx *gorm.DB) error {
	for _, model := range dropOrder {
		if tx.Migrator().HasTable(model) {
			if err := tx.Migrator().DropTable(model); err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}
	}
	for _, model := range createOrder {
		if err := tx.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}
	return SeedRoles(tx)
}

// SeedRoles inserts the fixed role set, skipping roles that already exist.
func SeedRoles(db *gorm.DB) error {
	for _, name := range models.SeededRoles {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	return nil
}
