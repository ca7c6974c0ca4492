package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ftcportal/internal/database"
)

func setupGuideTestEnv(t *testing.T) (*gorm.DB, *GuideService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Reset(db))

	team := seedTeam(t, db)
	user := seedUser(t, db, "captain", "supersecret", false, true)
	svc := NewGuideService(newSession(db, user, team))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, svc
}

func TestGuideService_CreateGuide(t *testing.T) {
	_, svc := setupGuideTestEnv(t)

	guide, err := svc.CreateGuide("  Swerve drive  ")
	require.NoError(t, err)
	require.Equal(t, "Swerve drive", guide.TopicName)
	require.NotNil(t, guide.CreatedByUserID)

	_, err = svc.CreateGuide("   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGuideService_AddVideo(t *testing.T) {
	_, svc := setupGuideTestEnv(t)

	guide, err := svc.CreateGuide("CAD basics")
	require.NoError(t, err)

	video, err := svc.AddVideo(guide.ID, "Intro", "https://example.com/intro")
	require.NoError(t, err)
	require.Equal(t, guide.ID, video.GuideID)
	require.Equal(t, "Intro", video.VideoTitle)
	require.NotNil(t, video.AddedByUserID)
	require.False(t, video.AddedAt.IsZero())
}

func TestGuideService_AddVideoValidation(t *testing.T) {
	_, svc := setupGuideTestEnv(t)

	guide, err := svc.CreateGuide("CAD basics")
	require.NoError(t, err)

	_, err = svc.AddVideo(guide.ID, "", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddVideo(guide.ID, "", "ftp://example.com/file")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddVideo(4242, "", "https://example.com/intro")
	require.ErrorIs(t, err, ErrGuideNotFound)
}

func TestGuideService_ListVideos(t *testing.T) {
	_, svc := setupGuideTestEnv(t)

	guide, err := svc.CreateGuide("CAD basics")
	require.NoError(t, err)
	other, err := svc.CreateGuide("Scouting")
	require.NoError(t, err)

	_, err = svc.AddVideo(guide.ID, "First", "https://example.com/1")
	require.NoError(t, err)
	_, err = svc.AddVideo(guide.ID, "Second", "https://example.com/2")
	require.NoError(t, err)
	_, err = svc.AddVideo(other.ID, "Elsewhere", "https://example.com/3")
	require.NoError(t, err)

	videos, err := svc.ListVideos(guide.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	require.Equal(t, "First", videos[0].VideoTitle)
	require.Equal(t, "Second", videos[1].VideoTitle)

	empty, err := svc.ListVideos(4242)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestGuideService_ListGuides(t *testing.T) {
	_, svc := setupGuideTestEnv(t)

	_, err := svc.CreateGuide("Scouting")
	require.NoError(t, err)
	_, err = svc.CreateGuide("CAD basics")
	require.NoError(t, err)

	guides, err := svc.ListGuides()
	require.NoError(t, err)
	require.Len(t, guides, 2)
	require.Equal(t, "CAD basics", guides[0].TopicName)
	require.Equal(t, "Scouting", guides[1].TopicName)
}
