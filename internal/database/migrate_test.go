package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ftcportal/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestResetProvisionsSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Reset(db))

	for _, model := range createOrder {
		require.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, len(models.SeededRoles))

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	require.ElementsMatch(t, models.SeededRoles, names)
}

func TestResetWipesExistingData(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Reset(db))

	require.NoError(t, db.Create(&models.Team{Number: 12345, Name: "Old Team", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "leftover", PasswordHash: "x"}).Error)

	require.NoError(t, Reset(db))

	var teams, users, roles int64
	require.NoError(t, db.Model(&models.Team{}).Count(&teams).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Role{}).Count(&roles).Error)
	require.EqualValues(t, 0, teams)
	require.EqualValues(t, 0, users)
	require.EqualValues(t, int64(len(models.SeededRoles)), roles)
}

func TestSeedRolesIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Reset(db))

	require.NoError(t, SeedRoles(db))
	require.NoError(t, SeedRoles(db))

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	require.EqualValues(t, int64(len(models.SeededRoles)), count)
}
