package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"ftcportal/internal/models"
	"ftcportal/internal/repository"
)

// GuideService manages the team's guide topics and the videos attached to
// them. Any authenticated user may contribute.
type GuideService struct {
	session *Session
	guides  repository.GuideRepository
}

// NewGuideService creates a GuideService bound to the session.
func NewGuideService(session *Session) *GuideService {
	return &GuideService{
		session: session,
		guides:  repository.NewGuideRepository(session.DB()),
	}
}

// CreateGuide adds a new topic credited to the session user.
func (s *GuideService) CreateGuide(topicName string) (*models.Guide, error) {
	topicName = strings.TrimSpace(topicName)
	if topicName == "" {
		return nil, fmt.Errorf("%w: topic name cannot be empty", ErrInvalidInput)
	}
	creatorID := s.session.User.ID
	guide := &models.Guide{
		TopicName:       topicName,
		CreatedByUserID: &creatorID,
	}
	if err := s.guides.Create(guide); err != nil {
		return nil, fmt.Errorf("failed to create guide topic: %w", err)
	}
	return guide, nil
}

// ListGuides returns all topics ordered by name.
func (s *GuideService) ListGuides() ([]models.Guide, error) {
	return s.guides.List()
}

// AddVideo attaches a video URL to a guide. The title is optional; the URL
// must be http or https.
func (s *GuideService) AddVideo(guideID uint, title, videoURL string) (*models.GuideVideo, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, fmt.Errorf("%w: video URL cannot be empty", ErrInvalidInput)
	}
	if !strings.HasPrefix(videoURL, "http://") && !strings.HasPrefix(videoURL, "https://") {
		return nil, fmt.Errorf("%w: video URL must start with http:// or https://", ErrInvalidInput)
	}
	if _, err := s.guides.FindByID(guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no guide %d", ErrGuideNotFound, guideID)
		}
		return nil, fmt.Errorf("failed to look up guide: %w", err)
	}
	adderID := s.session.User.ID
	video := &models.GuideVideo{
		GuideID:       guideID,
		VideoURL:      videoURL,
		VideoTitle:    strings.TrimSpace(title),
		AddedByUserID: &adderID,
		AddedAt:       time.Now(),
	}
	if err := s.guides.AddVideo(video); err != nil {
		return nil, fmt.Errorf("failed to add video: %w", err)
	}
	return video, nil
}

// ListVideos returns a guide's videos in the order they were added.
func (s *GuideService) ListVideos(guideID uint) ([]models.GuideVideo, error) {
	return s.guides.ListVideos(guideID)
}
