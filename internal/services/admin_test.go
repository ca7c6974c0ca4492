package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ftcportal/internal/database"
	"ftcportal/internal/models"
)

type adminTestEnv struct {
	db      *gorm.DB
	session *Session
	svc     *AdminService
	admin   models.User
	team    models.Team
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Reset(db))

	team := seedTeam(t, db)
	admin := seedUser(t, db, "captain", "supersecret", false, true)

	session := newSession(db, admin, team)
	svc := NewAdminService(session)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{db: db, session: session, svc: svc, admin: admin, team: team}
}

func TestAdminService_NonAdminRejected(t *testing.T) {
	env := setupAdminTestEnv(t)
	member := seedUser(t, env.db, "member", "supersecret", false, false)
	pending := seedUser(t, env.db, "applicant", "supersecret", true, false)

	session := newSession(env.db, member, env.team)
	svc := NewAdminService(session)

	_, err := svc.ListPending()
	require.ErrorIs(t, err, ErrNotAdmin)

	require.ErrorIs(t, svc.ApproveUser(pending.ID), ErrNotAdmin)
	require.ErrorIs(t, svc.RejectUser(pending.ID), ErrNotAdmin)
	require.ErrorIs(t, svc.SetAdmin(pending.ID, true), ErrNotAdmin)
	require.ErrorIs(t, svc.UpdateTeamName("Hijacked"), ErrNotAdmin)

	// The rejected calls changed nothing.
	var fresh models.User
	require.NoError(t, env.db.First(&fresh, pending.ID).Error)
	require.True(t, fresh.IsPending)
	require.False(t, fresh.IsAdmin)

	var team models.Team
	require.NoError(t, env.db.First(&team).Error)
	require.Equal(t, env.team.Name, team.Name)
}

func TestAdminService_StaleIdentityRechecked(t *testing.T) {
	env := setupAdminTestEnv(t)

	// The database revokes the flag after the session was established; the
	// fresh row wins over the in-memory identity.
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", env.admin.ID).
		Update("is_admin", false).Error)

	_, err := env.svc.ListActive()
	require.ErrorIs(t, err, ErrNotAdmin)
}

func TestAdminService_ApproveUser(t *testing.T) {
	env := setupAdminTestEnv(t)
	pending := seedUser(t, env.db, "applicant", "supersecret", true, false)

	require.NoError(t, env.svc.ApproveUser(pending.ID))

	var fresh models.User
	require.NoError(t, env.db.First(&fresh, pending.ID).Error)
	require.False(t, fresh.IsPending)

	// Approving twice finds no pending row.
	require.ErrorIs(t, env.svc.ApproveUser(pending.ID), ErrUserNotFound)
}

func TestAdminService_RejectUser(t *testing.T) {
	env := setupAdminTestEnv(t)
	pending := seedUser(t, env.db, "applicant", "supersecret", true, false)

	require.NoError(t, env.svc.RejectUser(pending.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", pending.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)

	require.ErrorIs(t, env.svc.RejectUser(pending.ID), ErrUserNotFound)
}

func TestAdminService_RejectRefusesActiveUser(t *testing.T) {
	env := setupAdminTestEnv(t)
	member := seedUser(t, env.db, "member", "supersecret", false, false)

	// Reject only applies to join requests, never approved accounts.
	require.ErrorIs(t, env.svc.RejectUser(member.ID), ErrUserNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", member.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAdminService_AssignRole(t *testing.T) {
	env := setupAdminTestEnv(t)
	member := seedUser(t, env.db, "member", "supersecret", false, false)

	require.NoError(t, env.svc.AssignRole(member.ID, "Software Lead"))

	var fresh models.User
	require.NoError(t, env.db.Preload("Role").First(&fresh, member.ID).Error)
	require.NotNil(t, fresh.Role)
	require.Equal(t, "Software Lead", fresh.Role.Name)

	require.ErrorIs(t, env.svc.AssignRole(member.ID, "Grandmaster"), ErrRoleNotFound)
}

func TestAdminService_SetAdmin(t *testing.T) {
	env := setupAdminTestEnv(t)
	member := seedUser(t, env.db, "member", "supersecret", false, false)

	require.NoError(t, env.svc.SetAdmin(member.ID, true))

	var fresh models.User
	require.NoError(t, env.db.First(&fresh, member.ID).Error)
	require.True(t, fresh.IsAdmin)

	require.NoError(t, env.svc.SetAdmin(member.ID, false))
	require.NoError(t, env.db.First(&fresh, member.ID).Error)
	require.False(t, fresh.IsAdmin)
}

func TestAdminService_RemoveUserCascades(t *testing.T) {
	env := setupAdminTestEnv(t)
	member := seedUser(t, env.db, "member", "supersecret", false, false)

	memberSession := newSession(env.db, member, env.team)
	attendance := NewAttendanceService(memberSession)
	_, err := attendance.CreateMeeting("Build session", "", []uint{member.ID})
	require.NoError(t, err)

	guides := NewGuideService(memberSession)
	guide, err := guides.CreateGuide("CAD basics")
	require.NoError(t, err)
	video, err := guides.AddVideo(guide.ID, "Intro", "https://example.com/cad")
	require.NoError(t, err)

	require.NoError(t, env.svc.RemoveUser(member.ID))

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", member.ID).Count(&users).Error)
	require.EqualValues(t, 0, users)

	// Attendance rows go with the user.
	var attendances int64
	require.NoError(t, env.db.Model(&models.Attendance{}).Where("user_id = ?", member.ID).Count(&attendances).Error)
	require.EqualValues(t, 0, attendances)

	// Contributions stay, with the author reference cleared.
	var freshGuide models.Guide
	require.NoError(t, env.db.First(&freshGuide, guide.ID).Error)
	require.Nil(t, freshGuide.CreatedByUserID)

	var freshVideo models.GuideVideo
	require.NoError(t, env.db.First(&freshVideo, video.ID).Error)
	require.Nil(t, freshVideo.AddedByUserID)
}

func TestAdminService_RemoveUserSelf(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.ErrorIs(t, env.svc.RemoveUser(env.admin.ID), ErrSelfRemoval)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", env.admin.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAdminService_RemoveUserUnknown(t *testing.T) {
	env := setupAdminTestEnv(t)
	require.ErrorIs(t, env.svc.RemoveUser(4242), ErrUserNotFound)
}

func TestAdminService_UpdateTeamName(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.NoError(t, env.svc.UpdateTeamName("Gear Grinders"))

	var team models.Team
	require.NoError(t, env.db.First(&team).Error)
	require.Equal(t, "Gear Grinders", team.Name)
	require.Equal(t, "Gear Grinders", env.session.Team.Name)

	require.ErrorIs(t, env.svc.UpdateTeamName("   "), ErrInvalidInput)
}

func TestAdminService_UpdateTeamPassword(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.NoError(t, env.svc.UpdateTeamPassword("new-team-secret"))

	var team models.Team
	require.NoError(t, env.db.First(&team).Error)
	require.True(t, CheckPassword("new-team-secret", team.PasswordHash))
	require.False(t, CheckPassword("team-secret", team.PasswordHash))

	require.ErrorIs(t, env.svc.UpdateTeamPassword(""), ErrInvalidInput)
}

func TestAdminService_ListPendingAndActive(t *testing.T) {
	env := setupAdminTestEnv(t)
	seedUser(t, env.db, "member", "supersecret", false, false)
	seedUser(t, env.db, "applicant", "supersecret", true, false)

	pending, err := env.svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "applicant", pending[0].Username)

	active, err := env.svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 2)

	roles, err := env.svc.ListRoles()
	require.NoError(t, err)
	require.Len(t, roles, len(models.SeededRoles))
}
