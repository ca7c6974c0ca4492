package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ftcportal/internal/database"
	"ftcportal/internal/models"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Reset(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestUserRepository_CreatePersistsFalseFlags(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	// IsPending carries a database default of true; an explicit false must
	// survive the insert rather than being dropped as a zero value.
	user := &models.User{Username: "founder", PasswordHash: "x", IsPending: false, IsAdmin: true}
	require.NoError(t, repo.Create(user))

	fresh, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.False(t, fresh.IsPending)
	require.True(t, fresh.IsAdmin)
}

func TestUserRepository_ApproveOnlyTouchesPendingRows(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	active := &models.User{Username: "alice", PasswordHash: "x", IsPending: false}
	require.NoError(t, repo.Create(active))

	require.ErrorIs(t, repo.Approve(active.ID), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.Approve(4242), gorm.ErrRecordNotFound)
}

func TestUserRepository_ListsSplitOnPendingFlag(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&models.User{Username: "alice", PasswordHash: "x", IsPending: false}))
	require.NoError(t, repo.Create(&models.User{Username: "bob", PasswordHash: "x", IsPending: true}))

	pending, err := repo.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "bob", pending[0].Username)

	active, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "alice", active[0].Username)

	count, err := repo.CountActive()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
